// Package network answers questions about the local IPv4 networks:
// which interfaces are up, which addresses they carry
// and where their broadcast addresses are.
package network
