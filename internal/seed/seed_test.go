package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Catalog(t *testing.T) {
	list, err := Default()
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
		assert.NotEmpty(t, a.Description, a.Name)
		assert.NotEmpty(t, a.Schedule, a.Name)
		assert.Positive(t, a.MaxParticipants, a.Name)
	}
	assert.Equal(t, "Chess Club", names[0])
	for _, want := range []string{"Programming Class", "Gym Class", "Basketball Team", "Drama Club", "Art Studio"} {
		assert.Contains(t, names, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":           ``,
		"no activities":   "activities: []\n",
		"missing name":    "activities:\n  - description: x\n    max_participants: 1\n",
		"zero capacity":   "activities:\n  - name: A\n    max_participants: 0\n",
		"duplicate name":  "activities:\n  - name: A\n    max_participants: 1\n  - name: A\n    max_participants: 1\n",
		"over capacity":   "activities:\n  - name: A\n    max_participants: 1\n    participants: [a@x, b@x]\n",
		"duplicate email": "activities:\n  - name: A\n    max_participants: 3\n    participants: [a@x, a@x]\n",
		"blank email":     "activities:\n  - name: A\n    max_participants: 3\n    participants: [\"  \"]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrInvalidSeed)
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	doc := "activities:\n  - name: A\n    max_participants: 1\n    room: 101\n"
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoad_FileAndDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "activities:\n  - name: Chess Club\n    description: d\n    schedule: s\n    max_participants: 2\n    participants: [a@x]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	list, err := Load(path)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"a@x"}, list[0].Participants)

	def, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, len(def), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
