package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"infobot-backend/internal/chat"
	"infobot-backend/internal/dialogue"
)

const cliSession = "cli"

func runChat(ctx context.Context, svc *chat.Service, in io.Reader, out io.Writer) error {
	greeting := svc.Greeting()
	printResponse(out, greeting)
	choices := greeting.QuickReplies
	var lastTopic string

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := svc.Reset(ctx, cliSession); err != nil {
				return err
			}
			fmt.Fprintln(out, "(conversation reset)")
			choices = nil
			continue
		case "/helpful", "/not-helpful":
			kind := dialogue.FeedbackHelpful
			if line == "/not-helpful" {
				kind = dialogue.FeedbackNotHelpful
			}
			ack, next := svc.Feedback(ctx, cliSession, kind, lastTopic)
			printResponse(out, ack)
			printResponse(out, next)
			choices = next.QuickReplies
			continue
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			line = choices[n-1]
			fmt.Fprintf(out, "(%s)\n", line)
		}

		turn := svc.Reply(ctx, cliSession, line)
		printTurn(out, turn)
		lastTopic = turn.Response.Topic.Ref
		choices = turn.Response.QuickReplies
		if turn.FollowUp != nil {
			choices = turn.FollowUp.QuickReplies
		}
	}
}

func printTurn(out io.Writer, turn chat.Turn) {
	printResponse(out, turn.Response)
	if turn.FollowUp != nil {
		printResponse(out, *turn.FollowUp)
	}
}

func printResponse(out io.Writer, r dialogue.Response) {
	fmt.Fprintln(out, r.Text)
	for i, q := range r.QuickReplies {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, q)
	}
}
