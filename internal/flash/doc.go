// Package flash implements one-shot notifications that survive exactly one
// redirect.
//
// A message is stored server-side under a random token carried by the
// recipebox_flash cookie. The next request that calls Pop receives every
// pending message for its token; the entry is deleted and the cookie
// expired, so a message is never shown twice.
//
// Tokens are UUIDv7 by default. Entries that are never read are swept once
// they are older than the store's TTL.
package flash
