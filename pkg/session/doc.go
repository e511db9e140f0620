/*
Package session implements session management and persistence orchestration.

A Manager guarantees that one event at a time is applied to a session: every
read-modify-write runs under a per-session lock, optionally backed by a
distributed lock when several server replicas share one store.
*/
package session
