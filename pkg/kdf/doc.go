/*
Package kdf derives fixed size keys from a secret using Argon2id (RFC 9106).

# How it works:

An Engine takes a secret, a salt, an Argon2 Version, and cost Params, and produces a 32 byte key in a secure.Buffer.
The same inputs always produce the same key, so the salt and Params must be kept alongside whatever the key protects.

Both Argon2 revisions are supported.
Version10 overwrites memory blocks on every pass, while Version13 XORs new blocks into the previous contents on passes after the first.

The block matrix and every scratch block are wiped before Derive returns, success or failure.

# General guidelines:
  - MemoryCost is expressed in KiB and must be at least 8 times Parallelism.
  - Raising MemoryCost is the most effective way to slow down brute forcing. TimeCost can compensate where memory is limited.
  - Salts shorter than MinSaltLen are rejected.
*/
package kdf
