// Package extract scans converted markdown for inline links and rewrites
// link targets in place.
//
// Extraction is a pure function of the input text: running it twice on the
// same text yields identical results, including the recorded byte spans.
// The rewriter depends on that guarantee, because it patches the text at
// the exact spans the extractor reported rather than doing substring
// replacement. Two distinct links that happen to share the same
// "[text](target)" spelling therefore rewrite independently.
package extract
