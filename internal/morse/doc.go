// Package morse builds a binary prefix-code tree from a table of symbol codes
// written over the alphabet {'.', '-'} and uses it to translate text to code
// groups and back.
//
// A dot descends to the left child and a dash to the right child, so the node
// reached by a code string is the node holding its symbol. Encoding writes
// each symbol's code followed by a single separator; a space in the text
// becomes one extra separator. Decoding walks the tree and emits the symbol
// under the cursor at every separator.
package morse
