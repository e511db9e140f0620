/*
Package domain contains the core models of the incorporation questionnaire.

It defines the static catalog entities (Questions, Options, Services), the
cumulative user input (Answers), and the mutable Session state that the
conversation engine drives. The package is kept pure and free of I/O so that
every adapter (HTTP, MCP, terminal, storage) shares the same vocabulary.

# Key Entities

  - Question: a prompt with an ordered list of Options, optionally multi-select.
  - Flow: one of the three terminal question sequences.
  - Answer: a single option id, or an ordered, duplicate-free list of ids.
  - Session: the snapshot of one conversation (current question, answers, transcript).
  - Turn: one append-only unit of the transcript.
  - Lead: a completed answer record plus contact details, handed to a sink.
*/
package domain
