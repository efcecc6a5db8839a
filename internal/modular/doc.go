// Package modular provides the integer arithmetic mod m used by the matrix
// ciphers: extended Euclid, modular inverse and 2x2 matrix inversion.
package modular
