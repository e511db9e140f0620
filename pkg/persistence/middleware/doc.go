// Package middleware wraps lead sinks to protect the contact details they
// receive: field-level AES-GCM encryption with key rotation, or masking for
// sinks that must never hold raw PII.
package middleware
