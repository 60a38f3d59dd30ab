package catalogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "les evanouis", Normalize("  Les ÉVANOUIS "))
	assert.Equal(t, "les evanouis 2025", normalizeKey("Les Évanouis   (2025)!"))
}

func TestFindShowtime(t *testing.T) {
	films := loadFixture(t)

	f, s, err := FindShowtime(films, "les evanouis", "3", "20:15")
	require.NoError(t, err)
	assert.Equal(t, "Les Évanouis", f.Title)
	assert.Equal(t, "22:23", s.End)

	// unknown start falls back to the same room
	_, s, err = FindShowtime(films, "Les Évanouis", "5", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "22:30", s.Start)

	// unknown room falls back to the first showtime
	_, s, err = FindShowtime(films, "Les Évanouis", "9", "")
	require.NoError(t, err)
	assert.Equal(t, "14:00", s.Start)

	// substring match on the normalised title
	f, _, err = FindShowtime(films, "wishy", "1", "10:30")
	require.NoError(t, err)
	assert.Equal(t, "Le Monde de Wishy", f.Title)

	_, _, err = FindShowtime(films, "Inconnu", "1", "10:30")
	assert.ErrorIs(t, err, ErrFilmNotFound)
	_, _, err = FindShowtime(films, "Écrans Noirs", "1", "10:30")
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
	_, err = FindFilm(films, "")
	assert.ErrorIs(t, err, ErrFilmNotFound)
}

func TestTrailers_Lookup(t *testing.T) {
	tr := DefaultTrailers()

	u, ok := tr.Lookup("Le Monde de Wishy")
	assert.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/embed/wiWYHjlhTKc", u)

	u, ok = tr.Lookup("Les Évanouis (2025)")
	assert.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/embed/eDBLToWrnBU", u)

	_, ok = tr.Lookup("Écrans Noirs")
	assert.False(t, ok)

	assert.Equal(t, "https://x/embed/1?autoplay=1&rel=0", EmbedURL("https://x/embed/1"))
	assert.Equal(t, "https://x/e?t=1&autoplay=1&rel=0", EmbedURL("https://x/e?t=1"))
}

func TestLoadTrailers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trailers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Les Évanouis": "https://t/1"}`), 0o644))

	tr, err := LoadTrailers(path)
	require.NoError(t, err)
	assert.Equal(t, Trailers{"les evanouis": "https://t/1"}, tr)

	_, err = LoadTrailers(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
