// Package services holds infrastructure implementations of domain services.
package services

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// SnowflakePaymentNumberGenerator issues time ordered payment numbers such as
// "RF1U8ZQ3K2W9S". Instances sharing a database need distinct node ids.
type SnowflakePaymentNumberGenerator struct {
	node *snowflake.Node
}

func NewSnowflakePaymentNumberGenerator(nodeID int64) (*SnowflakePaymentNumberGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakePaymentNumberGenerator{node: node}, nil
}

func (g *SnowflakePaymentNumberGenerator) Generate(prefix string) string {
	return prefix + strings.ToUpper(g.node.Generate().Base36())
}
