package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/timeliner-io/timeliner/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "health":
		cmdHealth()
	case "show":
		requireArg(3, "timelinerctl show <incident>")
		cmdShow(os.Args[2])
	case "entry":
		requireArg(3, "timelinerctl entry <incident> [--status s] [--notes n]")
		cmdEntry(os.Args[2], os.Args[3:])
	case "export":
		requireArg(3, "timelinerctl export <incident>")
		cmdExport(os.Args[2])
	case "import":
		requireArg(3, "timelinerctl import <file>")
		cmdImport(os.Args[2])
	case "analysis":
		requireArg(3, "timelinerctl analysis <incident>")
		cmdAnalysis(os.Args[2])
	case "summary":
		requireArg(3, "timelinerctl summary <incident> [--type technical|pir]")
		cmdSummary(os.Args[2], os.Args[3:])
	case "can":
		requireArg(3, "timelinerctl can <publish|list> <incident>")
		switch os.Args[2] {
		case "publish":
			requireArg(4, "timelinerctl can publish <incident> [--condition c] [--action a] [--need n]")
			cmdCANPublish(os.Args[3], os.Args[4:])
		case "list":
			requireArg(4, "timelinerctl can list <incident>")
			cmdCANList(os.Args[3])
		default:
			fmt.Fprintf(os.Stderr, "unknown can subcommand: %s\n", os.Args[2])
			os.Exit(1)
		}
	case "teams":
		requireArg(3, "timelinerctl teams <list|add>")
		switch os.Args[2] {
		case "list":
			cmdTeamsList()
		case "add":
			requireArg(4, "timelinerctl teams add <name>")
			cmdTeamsAdd(os.Args[3])
		default:
			fmt.Fprintf(os.Stderr, "unknown teams subcommand: %s\n", os.Args[2])
			os.Exit(1)
		}
	case "callout":
		cmdCallout(os.Args[2:])
	case "session":
		if len(os.Args) >= 4 && os.Args[2] == "set" {
			cmdSessionSet(os.Args[3])
		} else {
			cmdSessionShow()
		}
	case "logs":
		cmdLogs(os.Args[2:])
	case "audit":
		cmdAudit(os.Args[2:])
	case "config":
		if len(os.Args) < 4 || os.Args[2] != "validate" {
			fmt.Fprintln(os.Stderr, "usage: timelinerctl config validate <path>")
			os.Exit(1)
		}
		cmdConfigValidate(os.Args[3])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func requireArg(n int, usage string) {
	if len(os.Args) < n {
		fmt.Fprintln(os.Stderr, "usage: "+usage)
		os.Exit(1)
	}
}

// --- Commands ---

func cmdHealth() {
	body, err := apiGet("/api/health")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(body))
}

func cmdShow(number string) {
	body, err := apiGet("/api/incidents/" + number)
	if err != nil {
		fatal(err)
	}
	fmt.Println(prettyJSON(body))
}

func cmdEntry(number string, args []string) {
	fs := flag.NewFlagSet("entry", flag.ExitOnError)
	status := fs.String("status", "Update", "Entry status")
	notes := fs.String("notes", "", "Entry notes")
	fs.Parse(args)

	payload, _ := json.Marshal(map[string]string{"status": *status, "notes": *notes})
	body, err := apiPost("/api/incidents/"+number+"/entries", payload)
	if err != nil {
		fatal(err)
	}
	fmt.Println(prettyJSON(body))
}

func cmdExport(number string) {
	body, err := apiGet("/api/incidents/" + number + "/export")
	if err != nil {
		fatal(err)
	}
	fmt.Print(string(body))
}

func cmdImport(path string) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fatal(err)
	}

	body, err := apiPost("/api/incidents/import", data)
	if err != nil {
		fatal(err)
	}
	var state struct {
		Incident string `json:"titleIncident"`
	}
	json.Unmarshal(body, &state)
	fmt.Printf("imported %s\n", state.Incident)
}

func cmdAnalysis(number string) {
	body, err := apiGet("/api/incidents/" + number + "/analysis")
	if err != nil {
		fatal(err)
	}
	fmt.Print(string(body))
}

func cmdSummary(number string, args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	typ := fs.String("type", "technical", "Summary type: technical or pir")
	fs.Parse(args)

	payload, _ := json.Marshal(map[string]string{"type": *typ})
	body, err := apiPost("/api/incidents/"+number+"/summary", payload)
	if err != nil {
		fatal(err)
	}
	var resp struct {
		Summary string `json:"summary"`
	}
	json.Unmarshal(body, &resp)
	fmt.Println(resp.Summary)
}

func cmdCANPublish(number string, args []string) {
	fs := flag.NewFlagSet("can publish", flag.ExitOnError)
	condition := fs.String("condition", "", "Current condition")
	action := fs.String("action", "", "Actions in progress")
	need := fs.String("need", "", "Outstanding needs")
	fs.Parse(args)

	payload, _ := json.Marshal(map[string]string{
		"condition": *condition,
		"action":    *action,
		"need":      *need,
	})
	body, err := apiPost("/api/incidents/"+number+"/can", payload)
	if err != nil {
		fatal(err)
	}
	fmt.Println(prettyJSON(body))
}

func cmdCANList(number string) {
	body, err := apiGet("/api/incidents/" + number + "/can")
	if err != nil {
		fatal(err)
	}
	var reports []struct {
		Timestamp string `json:"timestamp"`
		Notes     string `json:"notes"`
	}
	json.Unmarshal(body, &reports)
	for _, r := range reports {
		fmt.Printf("--- %s ---\n%s\n\n", r.Timestamp, r.Notes)
	}
}

func cmdTeamsList() {
	body, err := apiGet("/api/teams")
	if err != nil {
		fatal(err)
	}
	var teams []string
	json.Unmarshal(body, &teams)
	for _, t := range teams {
		fmt.Println(t)
	}
}

func cmdTeamsAdd(name string) {
	payload, _ := json.Marshal(map[string]string{"name": name})
	if _, err := apiPost("/api/teams", payload); err != nil {
		fatal(err)
	}
	fmt.Printf("added %s\n", name)
}

func cmdCallout(args []string) {
	fs := flag.NewFlagSet("callout", flag.ExitOnError)
	incident := fs.String("incident", "", "Incident number")
	team := fs.String("team", "", "Team to page")
	summary := fs.String("summary", "", "Incident summary")
	severity := fs.String("severity", "", "Severity")
	description := fs.String("description", "", "What is needed from the team")
	fs.Parse(args)

	if *incident == "" || *team == "" {
		fmt.Fprintln(os.Stderr, "error: --incident and --team are required")
		os.Exit(1)
	}

	payload, _ := json.Marshal(map[string]string{
		"incident":    *incident,
		"team":        *team,
		"summary":     *summary,
		"severity":    *severity,
		"description": *description,
	})
	body, err := apiPost("/api/callout", payload)
	if err != nil {
		fatal(err)
	}
	var resp struct {
		Delivered bool `json:"delivered"`
	}
	json.Unmarshal(body, &resp)
	if resp.Delivered {
		fmt.Printf("%s paged\n", *team)
	} else {
		fmt.Printf("%s recorded on timeline, no pager delivery\n", *team)
	}
}

func cmdSessionShow() {
	body, err := apiGet("/api/session")
	if err != nil {
		fatal(err)
	}
	var resp struct {
		Incident string `json:"incident"`
	}
	json.Unmarshal(body, &resp)
	if resp.Incident == "" {
		fmt.Println("no active incident")
	} else {
		fmt.Println(resp.Incident)
	}
}

func cmdSessionSet(number string) {
	payload, _ := json.Marshal(map[string]string{"incident": number})
	if _, err := apiPut("/api/session", payload); err != nil {
		fatal(err)
	}
	fmt.Printf("session set to %s\n", number)
}

func cmdLogs(args []string) {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Max entries")
	level := fs.String("level", "", "Min level (info|warn|error)")
	fs.Parse(args)

	query := fmt.Sprintf("?limit=%d", *limit)
	if *level != "" {
		query += "&level=" + *level
	}
	body, err := apiGet("/api/logs" + query)
	if err != nil {
		fatal(err)
	}
	var entries []map[string]any
	json.Unmarshal(body, &entries)
	for _, e := range entries {
		fmt.Printf("%-24v %-6v %v\n", e["time"], e["level"], e["message"])
	}
}

func cmdAudit(args []string) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	action := fs.String("action", "", "Filter by action")
	incident := fs.String("incident", "", "Filter by incident")
	limit := fs.Int("limit", 50, "Max events")
	fs.Parse(args)

	query := fmt.Sprintf("?limit=%d", *limit)
	if *action != "" {
		query += "&action=" + *action
	}
	if *incident != "" {
		query += "&incident=" + *incident
	}
	body, err := apiGet("/api/audit" + query)
	if err != nil {
		fatal(err)
	}
	var events []map[string]any
	json.Unmarshal(body, &events)
	for _, e := range events {
		fmt.Printf("%-24v %-10v %-14v %v\n", e["at"], e["action"], e["incident"], e["detail"])
	}
}

func cmdConfigValidate(path string) {
	if _, err := config.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("config is valid")
}

// --- Helpers ---

func apiGet(path string) ([]byte, error) {
	return apiDo("GET", path, nil)
}

func apiPost(path string, payload []byte) ([]byte, error) {
	return apiDo("POST", path, payload)
}

func apiPut(path string, payload []byte) ([]byte, error) {
	return apiDo("PUT", path, payload)
}

func apiDo(method, path string, payload []byte) ([]byte, error) {
	base := envOr("TIMELINER_API_URL", "http://localhost:8080")

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, base+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := os.Getenv("TIMELINER_API_KEY"); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func prettyJSON(data []byte) string {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	out, _ := json.MarshalIndent(v, "", "  ")
	return string(out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("timelinerctl — incident timeline CLI")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  health                      Check daemon health")
	fmt.Println("  show <incident>             Show incident state")
	fmt.Println("  entry <incident>            Add timeline entry (--status, --notes)")
	fmt.Println("  export <incident>           Print plain-text dump")
	fmt.Println("  import <file|->             Restore incident from a dump")
	fmt.Println("  analysis <incident>         Print analysis document")
	fmt.Println("  summary <incident>          Generate AI summary (--type technical|pir)")
	fmt.Println("  can publish <incident>      Publish CAN report (--condition, --action, --need)")
	fmt.Println("  can list <incident>         List CAN reports")
	fmt.Println("  teams list                  List callout teams")
	fmt.Println("  teams add <name>            Add a callout team")
	fmt.Println("  callout                     Page a team (--incident, --team, ...)")
	fmt.Println("  session [set <incident>]    Show or set the active incident")
	fmt.Println("  logs                        Show recent daemon logs (--limit, --level)")
	fmt.Println("  audit                       Show audit events (--action, --incident, --limit)")
	fmt.Println("  config validate <path>      Validate config file")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  TIMELINER_API_URL   Daemon URL (default: http://localhost:8080)")
	fmt.Println("  TIMELINER_API_KEY   API key for authentication")
}
