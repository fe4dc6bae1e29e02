package core

// Position is the ordinal slot of a record within its backing ordered
// collection. It is strictly 32-bit, allowing for max 4 Billion records per
// collection. Positions stay meaningful only while the backing collection is
// neither reordered nor truncated; the collection owner must guarantee that
// for the lifetime of every index derived from it.
type Position uint32

// MaxPosition is the maximum possible value for a Position.
const MaxPosition = ^Position(0)
