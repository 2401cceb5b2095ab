/*
Package ace is a digital assistant engine: free text goes in, a trained intent
classifier maps it to an intent label, and a registered handler produces the
response that goes back out.

It separates the classification model (trained from a CSV of labeled example
utterances), the intent registry (named handlers with dispatch flags), and the
I/O surfaces (terminal, speech, HTTP, MCP), so each can be swapped or tested in
isolation.

# Usage

An Assistant is built from two small interfaces, a Classifier and a Registry,
and driven directly or through a Runner:

	package main

	import (
		"context"
		"fmt"
		"log"
		"strings"

		"github.com/acelabs/ace"
	)

	type keywordClassifier struct{}

	func (keywordClassifier) Predict(text string) (string, float64) {
		if strings.Contains(text, "hi") {
			return "greeting", 1
		}
		return ace.UnknownIntent, 0
	}

	type replies map[string]string

	func (r replies) Run(ctx context.Context, name, text string) (string, bool) {
		if reply, ok := r[name]; ok {
			return reply, false
		}
		return "Sorry, I don't know what you mean.", false
	}

	func (r replies) Names() []string {
		names := make([]string, 0, len(r))
		for name := range r {
			names = append(names, name)
		}
		return names
	}

	func main() {
		assistant := ace.New(keywordClassifier{}, replies{"greeting": "Hello!"})

		reply, err := assistant.Respond(context.Background(), "hi there")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(reply.Text)
	}

The cmd/ace CLI wires the full assistant: interactive chat, model training,
dataset validation, an HTTP API and an MCP server.
*/
package ace
