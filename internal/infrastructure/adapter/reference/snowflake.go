package reference

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// SnowflakeGenerator implements the ReferenceGenerator port with snowflake
// IDs: unique across nodes, roughly time-ordered, no database round trip.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates a generator for the given node ID (0-1023)
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

// Next returns a new unique reference string
func (g *SnowflakeGenerator) Next() string {
	return g.node.Generate().String()
}
