package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 3 * time.Second}

// buildPrompt colours the prompt bar by the API's sink readiness.
func buildPrompt() string {
	dir := getShortDir()

	barBg := BgGreen
	statusText := "sink ready"
	switch ready, err := sinkReady(); {
	case err != nil:
		barBg = BgRed
		statusText = "api offline"
	case !ready:
		barBg = BgYellow
		statusText = "sink detached, events dropped"
	}

	bar := fmt.Sprintf("%s%s %s | %s %s", barBg, Black, dir, statusText, Reset)
	return fmt.Sprintf("%s\n%s>%s ", bar, Cyan, Reset)
}

func sinkReady() (bool, error) {
	resp, err := httpClient.Get(cfg.APIURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var body struct {
		SinkReady bool `json:"sink_ready"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.SinkReady, nil
}

func getShortDir() string {
	dir, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(dir, home) {
		dir = "~" + dir[len(home):]
	}
	parts := strings.Split(dir, string(os.PathSeparator))
	if len(parts) > 2 {
		dir = "../" + strings.Join(parts[len(parts)-2:], "/")
	}
	return dir
}

func printFullStatus() {
	printDockerStatus()
	fmt.Println()
	printHealthChecks()
	fmt.Println()
	printRabbitQueues()
}

func printDockerStatus() {
	fmt.Printf("  %s%sDocker%s\n", Bold, White, Reset)

	output := strings.TrimSpace(runCmd("docker", "ps", "-a", "--filter", "name="+cfg.ComposeProject,
		"--format", "{{.Names}}|{{.Status}}|{{.Ports}}"))

	if output == "" {
		fmt.Printf("  %s[-] no containers%s\n", Dim, Reset)
		return
	}

	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimPrefix(parts[0], cfg.ComposeProject+"-")
		name = strings.TrimSuffix(name, "-1")

		color, icon := Red, "[-]"
		if strings.Contains(parts[1], "Up") {
			color, icon = Green, "[+]"
		}

		port := ""
		if len(parts) > 2 {
			for _, p := range strings.Split(parts[2], ",") {
				if host, _, ok := strings.Cut(strings.TrimSpace(p), "->"); ok {
					port = fmt.Sprintf(" %s-> %s%s", Dim, strings.TrimPrefix(host, "0.0.0.0:"), Reset)
				}
			}
		}

		fmt.Printf("  %s%s%s %-22s%s\n", color, icon, Reset, name, port)
	}
}

func printHealthChecks() {
	fmt.Printf("  %s%sHealth%s\n", Bold, White, Reset)

	endpoints := []struct {
		name string
		url  string
	}{
		{"api", cfg.APIURL + "/health"},
		{"metrics", cfg.APIURL + "/metrics"},
		{"rabbitmq", cfg.RabbitAdminURL},
	}

	for _, ep := range endpoints {
		resp, err := httpClient.Get(ep.url)
		if err != nil {
			fmt.Printf("  %s[-]%s %-12s %soffline%s\n", Red, Reset, ep.name, Red, Reset)
			continue
		}
		resp.Body.Close()
		fmt.Printf("  %s[+]%s %-12s %sok%s\n", Green, Reset, ep.name, Green, Reset)
	}

	if ready, err := sinkReady(); err == nil {
		color, state := Green, "attached"
		if !ready {
			color, state = Yellow, "detached"
		}
		fmt.Printf("  %s[*]%s %-12s %s%s%s\n", color, Reset, "sink", color, state, Reset)
	}
}

func printRabbitQueues() {
	fmt.Printf("  %s%sRabbitMQ Queues%s\n", Bold, White, Reset)

	output := strings.TrimSpace(runCmd("docker", "exec", cfg.ComposeProject+"-rabbitmq-1",
		"rabbitmqctl", "list_queues", "name", "messages", "consumers", "--quiet"))

	if output == "" {
		fmt.Printf("  %s[-] rabbitmq not reachable%s\n", Dim, Reset)
		return
	}

	fmt.Printf("  %s%-35s %8s %10s%s\n", Dim, "QUEUE", "MSGS", "CONSUMERS", Reset)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		color := Green
		if fields[1] != "0" {
			color = Yellow
		}
		if strings.HasPrefix(fields[0], "dlq.") && fields[1] != "0" {
			color = Red
		}
		fmt.Printf("  %s%-35s %s%8s%s %10s\n", Dim, fields[0], color, fields[1], Reset, fields[2])
	}
}

func shellExec(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
	}
}

func shellExecRaw(input string) {
	shell, flag := "sh", "-c"
	if _, err := exec.LookPath("bash"); err == nil {
		shell = "bash"
	}

	cmd := exec.Command(shell, flag, input)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

func runCmd(name string, args ...string) string {
	cmd := exec.Command(name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	_ = cmd.Run()
	return out.String()
}
