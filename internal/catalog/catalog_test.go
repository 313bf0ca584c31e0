package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Embedded().Load(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Learn, 10)
	assert.Equal(t, "What is BASE?", c.Learn[0].Label)
	assert.Equal(t, "Crypto Mining Basics", c.Learn[9].Label)
	assert.Equal(t, "Learn and earn: 0.001 ETH", c.Learn[5].Reward)
	assert.Equal(t, "Talk about BASE, the side chaine of Ethereum backed by Coinbase", c.Trade.Label)
}

func TestLearnTopicBounds(t *testing.T) {
	c, err := Embedded().Load(context.Background())
	require.NoError(t, err)

	topic, err := c.LearnTopic(5)
	require.NoError(t, err)
	assert.Equal(t, "What is DeFi?", topic.Label)

	_, err = c.LearnTopic(10)
	assert.True(t, errors.Is(err, ErrTopicNotFound))
	_, err = c.LearnTopic(-1)
	assert.True(t, errors.Is(err, ErrTopicNotFound))
}

func TestFileSourceYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "topics.yaml")
	jsonPath := filepath.Join(dir, "topics.json")

	require.NoError(t, os.WriteFile(yamlPath, []byte("learn:\n  - label: Staking 101\ntrade:\n  label: Trade desk\n"), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"learn":[{"label":"Gas fees","reward":"none"}],"trade":{"label":"Swap help"}}`), 0o600))

	c, err := FileSource{Path: yamlPath}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Topic{{Label: "Staking 101"}}, c.Learn)
	assert.Equal(t, "Trade desk", c.Trade.Label)

	c, err = FileSource{Path: jsonPath}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Topic{{Label: "Gas fees", Reward: "none"}}, c.Learn)
	assert.Equal(t, "Swap help", c.Trade.Label)
}

func TestFileSourceRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("learn: []\ntrade:\n  label: x\n"), 0o600))

	_, err := FileSource{Path: path}.Load(context.Background())
	assert.Error(t, err)

	_, err = FileSource{Path: filepath.Join(dir, "missing.yaml")}.Load(context.Background())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Catalog{Learn: []Topic{{Label: " "}}, Trade: Topic{Label: "t"}}).Validate())
	assert.Error(t, (&Catalog{Learn: []Topic{{Label: "a"}}}).Validate())
	assert.NoError(t, (&Catalog{Learn: []Topic{{Label: "a"}}, Trade: Topic{Label: "t"}}).Validate())
}

func TestStaticNil(t *testing.T) {
	_, err := Static{}.Load(context.Background())
	assert.Error(t, err)
}
