// Package vm implements the query compiler and virtual machine: the type
// system, the stack-value representation, the selector-to-program
// compiler, the interpreter loop, and the built-in function registry.
package vm

import (
	"math/bits"
	"strings"

	"github.com/lox/pql/internal/pql"
)

// Type is a bit-flag set of value types, so unions like NUMERIC are plain
// bitmasks and compatibility checks are intersections.
type Type uint32

const (
	TypeBoardRange       Type = 1 << 0
	TypeBoolean          Type = 1 << 1
	TypeCard             Type = 1 << 2
	TypeCardCount        Type = 1 << 3
	TypeDouble           Type = 1 << 4
	TypeFlopHandCategory Type = 1 << 6
	TypeFraction         Type = 1 << 7
	TypeHandRanking      Type = 1 << 8
	TypeHandType         Type = 1 << 9
	TypeHiRating         Type = 1 << 10
	TypeLong             Type = 1 << 12
	TypeLoRating         Type = 1 << 13
	TypePlayer           Type = 1 << 15
	TypeRange            Type = 1 << 17
	TypeRank             Type = 1 << 18
	TypeRankSet          Type = 1 << 19
	TypeStreet           Type = 1 << 20
	TypeString           Type = 1 << 21

	// Unions and aliases.
	TypeEquity      = TypeDouble
	TypeInteger     = TypeLong
	TypePlayerCount = TypeCardCount
	TypeNumeric     = TypeCardCount | TypeLong | TypeDouble | TypeFraction

	// TypeAny matches everything; used where no expectation applies.
	TypeAny = ^Type(0)
)

var typeNames = []struct {
	t    Type
	name string
}{
	{TypeBoardRange, "BOARDRANGE"},
	{TypeBoolean, "BOOLEAN"},
	{TypeCard, "CARD"},
	{TypeCardCount, "CARDCOUNT"},
	{TypeDouble, "DOUBLE"},
	{TypeFlopHandCategory, "FLOPHANDCATEGORY"},
	{TypeFraction, "FRACTION"},
	{TypeHandRanking, "HANDRANKING"},
	{TypeHandType, "HANDTYPE"},
	{TypeHiRating, "HIRATING"},
	{TypeLong, "LONG"},
	{TypeLoRating, "LORATING"},
	{TypePlayer, "PLAYER"},
	{TypeRange, "RANGE"},
	{TypeRank, "RANK"},
	{TypeRankSet, "RANKSET"},
	{TypeStreet, "STREET"},
	{TypeString, "STRING"},
}

// String names concrete types and spells unions as their members.
func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "NUMERIC"
	case TypeAny:
		return "ANY"
	}

	var parts []string
	for _, tn := range typeNames {
		if t&tn.t != 0 {
			parts = append(parts, tn.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// IsNumeric reports whether every member of the set is numeric.
func (t Type) IsNumeric() bool {
	return t != 0 && t&^TypeNumeric == 0
}

// IsConcrete reports whether the set holds exactly one type.
func (t Type) IsConcrete() bool {
	return bits.OnesCount32(uint32(t)) == 1
}

// Intersects reports whether the two sets share a member.
func (t Type) Intersects(other Type) bool {
	return t&other != 0
}

// SelectorExpectedType is the type constraint a selector kind places on
// its inner expression.
func SelectorExpectedType(kind pql.SelectorKind) Type {
	switch kind {
	case pql.SelectorCount:
		return TypeBoolean
	case pql.SelectorAvg:
		return TypeNumeric
	default: // min / max
		return TypeNumeric | TypeFlopHandCategory | TypeHandType | TypeHiRating | TypeRank
	}
}
