package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string            `json:"name"`
	Score  float64           `json:"score"`
	Tags   []string          `json:"tags"`
	Attrs  map[string]string `json:"attrs"`
	Nested *sample           `json:"nested,omitempty"`
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Agree(t *testing.T) {
	in := sample{
		Name:   "run",
		Score:  0.875,
		Tags:   []string{"cosine", "hnsw"},
		Attrs:  map[string]string{"k": "10"},
		Nested: &sample{Name: "inner"},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in, out)

			// Each codec must read the other's output.
			var cross sample
			require.NoError(t, JSON{}.Unmarshal(b, &cross))
			assert.Equal(t, in, cross)
		})
	}
}

func TestGoJSON_MarshalIndent(t *testing.T) {
	b, err := GoJSON{}.MarshalIndent(map[string]int{"a": 1}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}
