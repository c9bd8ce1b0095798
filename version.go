package spylang

// Version is the interpreter version reported by the CLI.
const Version = "0.4.0"
