// Package cipher implements the classical text ciphers: Caesar, Playfair,
// 2x2 Hill over Z/26 and a one-time pad over the Latin alphabet.
//
// Every function here is pure and safe for concurrent use. Keys are built
// per call and never cached. The only shared resource is the entropy source
// handed to GenerateKey.
package cipher
