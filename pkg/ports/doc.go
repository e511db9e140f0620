/*
Package ports defines the driven ports (interfaces) around the questionnaire engine.

These interfaces decouple the core logic from external implementations, allowing
sessions and leads to live in memory, on disk, in Redis or in MongoDB.

# Key Interfaces

  - Conversation: the engine operations front ends (HTTP, MCP, terminal) depend on.
  - SessionStore: persists and loads session snapshots.
  - DistributedLocker: serializes access to one session across replicas.
  - LeadSink: receives the completed answer record plus contact details.
*/
package ports
