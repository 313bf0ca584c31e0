package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	KindLearn = "learn"
	KindTrade = "trade"
)

var ErrTopicNotFound = errors.New("topic not found")

//go:embed topics.yaml
var defaultTopics []byte

// Topic is a label the user can ask to be called about.
type Topic struct {
	Label  string `yaml:"label" json:"label"`
	Reward string `yaml:"reward,omitempty" json:"reward,omitempty"`
}

// Catalog holds the educational topics and the single trade-context topic.
type Catalog struct {
	Learn []Topic `yaml:"learn" json:"learn"`
	Trade Topic   `yaml:"trade" json:"trade"`
}

// Source loads a catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// LearnTopic returns the i-th educational topic.
func (c *Catalog) LearnTopic(i int) (Topic, error) {
	if i < 0 || i >= len(c.Learn) {
		return Topic{}, fmt.Errorf("learn topic %d: %w", i, ErrTopicNotFound)
	}
	return c.Learn[i], nil
}

func (c *Catalog) Validate() error {
	if len(c.Learn) == 0 {
		return errors.New("catalog has no learn topics")
	}
	for i, t := range c.Learn {
		if strings.TrimSpace(t.Label) == "" {
			return fmt.Errorf("learn topic %d has an empty label", i)
		}
	}
	if strings.TrimSpace(c.Trade.Label) == "" {
		return errors.New("catalog has no trade topic")
	}
	return nil
}

// Parse decodes a YAML or JSON catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Static serves a fixed catalog.
type Static struct {
	Catalog *Catalog
}

// Embedded returns a source serving the catalog compiled into the binary.
func Embedded() Static {
	c, err := Parse(defaultTopics)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return Static{Catalog: c}
}

func (s Static) Load(context.Context) (*Catalog, error) {
	if s.Catalog == nil {
		return nil, errors.New("static catalog is nil")
	}
	return s.Catalog, nil
}
