/*
Package incorporate is the branching questionnaire engine behind the incorporation chat.

A session asks whether the visitor is setting up a new company or already has one
(and, if so, where it is incorporated), then runs exactly one of three question
sequences and finishes with a service recommendation. The engine is a pure state
machine: every operation takes a session snapshot and returns a new one, and an
event that does not fit the session is rejected without touching it.

# Concept

Question definitions live in an immutable catalog, built in or loaded from a YAML
or JSON file. The engine appends turns (greeting, question, answer, completion)
to the session transcript, which a front end renders verbatim: the terminal chat
in pkg/runner, the HTTP API in pkg/adapters/http or the MCP tools in
pkg/adapters/mcp. Completed sessions are turned into leads by pkg/leads.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/incorporate"
		"github.com/aretw0/incorporate/pkg/domain"
	)

	func main() {
		eng, err := incorporate.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		s, err := eng.Start(ctx, "")
		if err != nil {
			log.Fatal(err)
		}

		s, err = eng.SubmitSingle(ctx, s, domain.CompanyStatusID, "new")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(eng.CurrentProgress(s).Label()) // Question 2 of 8
	}
*/
package incorporate
