package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"asha-assistant-be/internal/config"
	"asha-assistant-be/internal/pkg/logger"
	"asha-assistant-be/pkg/assistant"
	"asha-assistant-be/pkg/assistant/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupts
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	clientLog := logger.NewIsolatedLogger("chat_client.log")
	defer clientLog.Sync()

	proxyClient := assistant.NewHTTPProxyClient(cfg.Client.ProxyURL)
	profileStore := storage.NewFileStore(cfg.Client.ProfilePath)
	mirrorStore := storage.NewMemoryStore()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	recorder := assistant.NewFeedbackRecorder(pubSub, proxyClient, clientLog)
	if err := recorder.Run(ctx); err != nil {
		clientLog.Error("main", "failed to start feedback recorder", map[string]interface{}{"error": err.Error()})
	}

	engine := assistant.NewEngine(proxyClient, profileStore, mirrorStore, pubSub, clientLog, assistant.Config{
		SuggestionDelay:     time.Duration(cfg.Client.SuggestionDelayMs) * time.Millisecond,
		RecommendationDelay: time.Duration(cfg.Client.RecommendationDelayMs) * time.Millisecond,
	})

	boldViolet := color.New(color.FgMagenta, color.Bold).SprintFunc()
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	link := color.New(color.FgCyan, color.Underline).SprintFunc()

	fmt.Println(boldViolet("✨ Asha Career Assistant"))
	fmt.Println("Ask me about jobs, events, mentorship...")
	fmt.Println(dim("Commands: /profile /login /good N /bad N /report N /1../9 /new /exit /quit"))
	fmt.Println()

	engine.Bootstrap(ctx)
	if p := engine.Profile(); p != nil {
		fmt.Printf("Welcome back, %s!\n\n", p.Name)
		if p.Skills != "" {
			// Give the scheduled recommendation flow time to land
			time.Sleep(time.Duration(cfg.Client.RecommendationDelayMs)*time.Millisecond + 500*time.Millisecond)
		}
	}

	printed := 0
	flush := func() {
		messages := engine.Messages()
		for ; printed < len(messages); printed++ {
			msg := messages[printed]
			if msg.Sender == assistant.SenderUser {
				fmt.Printf("%s %s\n", boldGreen("You:"), msg.Text)
				continue
			}
			fmt.Printf("%s %s\n", boldViolet("Asha:"), msg.Text)
			for _, btn := range assistant.ActionButtons(msg.Text) {
				marker := "·"
				if btn.Primary {
					marker = "»"
				}
				fmt.Printf("  %s %s %s\n", marker, btn.Label, link(btn.Href))
			}
		}
		if followups := engine.Followups(); len(followups) > 0 {
			fmt.Println(dim("Suggestions:"))
			for i, q := range followups {
				fmt.Printf("  %s %s\n", dim(fmt.Sprintf("/%d", i+1)), q)
			}
		}
	}
	flush()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/new":
			engine.Reset()
			printed = 0
			fmt.Println(dim("Started a new chat."))
			continue
		case line == "/exit":
			engine.ExitSession()
			printed = 0
			fmt.Println(dim("Session ended, profile cleared."))
			continue
		case line == "/profile":
			runProfileDialog(ctx, engine, scanner, cfg.Client.RecommendationDelayMs)
		case line == "/login":
			runLoginDialog(ctx, engine, scanner, cfg.Client.RecommendationDelayMs)
		case strings.HasPrefix(line, "/good "), strings.HasPrefix(line, "/bad "), strings.HasPrefix(line, "/report "):
			sendFeedback(ctx, engine, line)
		default:
			if n, err := strconv.Atoi(strings.TrimPrefix(line, "/")); err == nil && strings.HasPrefix(line, "/") {
				followups := engine.Followups()
				if n >= 1 && n <= len(followups) {
					engine.SelectSuggestion(ctx, followups[n-1])
				} else {
					fmt.Println(dim("No such suggestion."))
				}
			} else {
				engine.SendMessage(ctx, line)
			}
		}
		flush()
	}
}

// sendFeedback resolves "/good N" style commands against the Nth bot message
// counted from the top of the transcript.
func sendFeedback(ctx context.Context, engine *assistant.Engine, line string) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return
	}
	kinds := map[string]string{"/good": "positive", "/bad": "negative", "/report": "report"}
	kind, ok := kinds[parts[0]]
	if !ok {
		return
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return
	}

	count := 0
	for _, msg := range engine.Messages() {
		if msg.Sender != assistant.SenderBot {
			continue
		}
		count++
		if count == n {
			engine.GiveFeedback(ctx, msg.Id, kind)
			return
		}
	}
}

func runProfileDialog(ctx context.Context, engine *assistant.Engine, scanner *bufio.Scanner, recommendationDelayMs int) {
	prompt := func(label string) string {
		fmt.Printf("%s: ", label)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	draft := assistant.UserProfile{
		Name:       prompt("Name"),
		Email:      prompt("Email (optional)"),
		Skills:     prompt("Skills (e.g. React, Python)"),
		Experience: prompt("Experience level (entry/mid/senior/executive)"),
		Gender:     "woman",
	}

	confirm := ""
	if draft.Email != "" && engine.Profile() == nil {
		draft.Password = prompt("Password (min 6 characters)")
		confirm = prompt("Confirm password")
	}

	if err := engine.SaveProfile(ctx, draft, confirm, false); err != nil {
		color.Red("Could not save profile: %v", err)
		return
	}
	color.Green("Profile saved.")
	waitForRecommendations(engine, recommendationDelayMs)
}

func runLoginDialog(ctx context.Context, engine *assistant.Engine, scanner *bufio.Scanner, recommendationDelayMs int) {
	prompt := func(label string) string {
		fmt.Printf("%s: ", label)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	email := prompt("Email")
	password := prompt("Password")

	switch err := engine.Login(ctx, email, password); err {
	case nil:
		color.Green("Login successful.")
		waitForRecommendations(engine, recommendationDelayMs)
	case assistant.ErrAccountNotFound:
		color.Red("No account found with this email address. Please check your email or create a new account.")
	case assistant.ErrInvalidCredentials:
		color.Red("The email or password you entered is incorrect. Please try again.")
	case assistant.ErrMissingCredentials:
		color.Red("Please enter both email and password to continue.")
	default:
		color.Red("Unable to connect to the server. Please check your internet connection and try again.")
	}
}

func waitForRecommendations(engine *assistant.Engine, recommendationDelayMs int) {
	if p := engine.Profile(); p != nil && p.Skills != "" && len(engine.Messages()) == 0 {
		time.Sleep(time.Duration(recommendationDelayMs)*time.Millisecond + 500*time.Millisecond)
	}
}
