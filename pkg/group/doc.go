// Package group partitions normalized items into display groups.
//
// All three variants share one skeleton: bucket items by a key in first-seen
// order, order the buckets, and keep items in a deterministic order inside
// each bucket.
//
//   - [Themes] and [Cards]: surge rows by type, then themes by group name
//   - [ByCountry] and [BuildAnswerSheet]: answer items by country, then category
//   - [ByMaterial]: ranking stocks by material, colored from a [Palette]
//
// Grouping is total. Empty input yields empty output, and items missing a
// key land in the [card.Other] bucket. Palette cycling state is local to a
// single call.
package group
