// Package analyze implements the text and tag frequency analysis.
//
// The package contains four cooperating pieces:
//
//   - Extractor walks a document tree and collects the visible text,
//     skipping non-visible subtrees such as <script> and <style>.
//   - Tokenizer splits text into lower-cased word tokens and filters
//     stop-words.
//   - TagNames lists every element of the unfiltered tree in document
//     order, including the tags the extractor skips.
//   - Rank and TopN turn an ordered key sequence into a deterministic
//     frequency ranking.
//
// All functions are pure transformations over in-memory data: no I/O, no
// shared state, no mutation of the input tree. Running the same input
// twice yields identical output.
package analyze
