// Package inky implements an asset discovery session: a shuffled deck of
// crypto, stock and meme assets that a user swipes left to skip or right to
// buy, ending with a summary of the picked portfolio.
//
// The core functionalities include:
//   - Catalog: the list of assets, persisted as JSONL, with a default
//     catalog embedded in the binary.
//   - Deck: a reproducible random permutation of a catalog.
//   - Session: the swipe state machine (loading, active, complete) with
//     observers notified of every transition.
//   - Summary: total value, average change and per category tally of the
//     accepted assets.
//
// Charts derived from assets and summaries live in the chart package, the
// device management dashboard in the mdm package.
package inky
