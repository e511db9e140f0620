package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/flow"
)

// Overlay contains session state to highlight on the graph.
type Overlay struct {
	VisitedQuestions []string
	Current          string
}

// OverlayFor highlights the questions a session has answered and the one it
// is waiting on. A completed session points at its flow's end node.
func OverlayFor(s *domain.Session) *Overlay {
	if s == nil {
		return nil
	}
	o := &Overlay{Current: s.CurrentQuestionID}
	o.VisitedQuestions = append(o.VisitedQuestions, s.BranchPath...)
	o.VisitedQuestions = append(o.VisitedQuestions, s.Sequence[:min(s.Position, len(s.Sequence))]...)
	if s.Completed() {
		o.Current = DoneNode(s.Flow)
	}
	return o
}

// DoneNode is the id of the terminal node drawn after a flow's last question.
func DoneNode(f domain.Flow) string {
	return "done_" + string(f)
}

// Mermaid produces a flowchart of the catalog:
// - Branch questions: {Rhombus}, edges labelled with the option text
// - Sequence questions: [/Parallelogram/]
// - Flow end: ((Circle))
func Mermaid(cat *catalog.Catalog, overlay *Overlay) (string, error) {
	sel, err := flow.NewSelector(cat)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, branch := range []domain.Question{cat.CompanyStatus(), cat.IncorporationCountry()} {
		fmt.Fprintf(&sb, "    %s{\"%s\"}\n", sanitizeMermaidID(branch.ID), escape(branch.Text))

		for _, o := range branch.Options {
			outcome, err := sel.Select(branch.ID, o.ID)
			if err != nil {
				return "", err
			}
			target := outcome.Next.ID
			if outcome.Kind == flow.OutcomeSequence {
				target = outcome.Questions[0].ID
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
				sanitizeMermaidID(branch.ID), escape(o.Text), sanitizeMermaidID(target))
		}
	}

	for _, f := range domain.Flows() {
		questions, err := cat.Sequence(f)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "\n    %%%% %s\n", f)
		for i, q := range questions {
			label := escape(q.Text)
			if q.MultiSelect {
				label += " <br/> (multi)"
			}
			fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", sanitizeMermaidID(q.ID), label)

			next := DoneNode(f)
			if i+1 < len(questions) {
				next = questions[i+1].ID
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(q.ID), sanitizeMermaidID(next))
		}
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", sanitizeMermaidID(DoneNode(f)), f)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light fills regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisitedQuestions {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String(), nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
