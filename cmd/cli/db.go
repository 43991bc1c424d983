package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func reachable(db *sql.DB, label string) bool {
	if db == nil || db.Ping() != nil {
		fmt.Printf("  %s[x] %s db not reachable%s\n", Red, label, Reset)
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// CRM commands
// ---------------------------------------------------------------------------

func crmShowContacts() {
	if !reachable(crmDB, "crm") {
		return
	}
	rows, err := crmDB.Query(`SELECT user_id, email, full_name, role, updated_at
		FROM crm_contacts ORDER BY updated_at DESC LIMIT 20`)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()

	fmt.Printf("  %s%-24s %-28s %-22s %-14s %s%s\n", Bold, "USER_ID", "EMAIL", "NAME", "ROLE", "UPDATED", Reset)
	fmt.Printf("  %s%s%s\n", Dim, strings.Repeat("-", 100), Reset)
	for rows.Next() {
		var userID, email, name, role string
		var updated time.Time
		if err := rows.Scan(&userID, &email, &name, &role, &updated); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		fmt.Printf("  %-24s %-28s %-22s %-14s %s\n", userID, email, name, role, updated.Format("15:04:05"))
	}
}

func crmShowSyncLog() {
	if !reachable(crmDB, "crm") {
		return
	}
	rows, err := crmDB.Query(`SELECT message_id, user_id, user_email, synced_at
		FROM crm_sync_log ORDER BY synced_at DESC LIMIT 20`)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()

	fmt.Printf("  %s%-38s %-24s %-28s %s%s\n", Bold, "MESSAGE_ID", "USER_ID", "EMAIL", "TIME", Reset)
	for rows.Next() {
		var messageID, userID, email string
		var syncedAt time.Time
		if err := rows.Scan(&messageID, &userID, &email, &syncedAt); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		fmt.Printf("  %s[ok]%s %-33s %-24s %-28s %s\n", Green, Reset, messageID, userID, email, syncedAt.Format("15:04:05"))
	}
}

// ---------------------------------------------------------------------------
// Analytics commands
// ---------------------------------------------------------------------------

func analyticsShowEvents() {
	if !reachable(analyticsDB, "analytics") {
		return
	}
	rows, err := analyticsDB.Query(`SELECT call_type, COALESCE(event_name, ''), COALESCE(user_id, ''), sent_at
		FROM analytics_events ORDER BY sent_at DESC LIMIT 20`)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()

	fmt.Printf("  %s%-10s %-28s %-24s %s%s\n", Bold, "CALL", "EVENT", "USER", "SENT", Reset)
	for rows.Next() {
		var call, event, userID string
		var sentAt time.Time
		if err := rows.Scan(&call, &event, &userID, &sentAt); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		color := Cyan
		switch call {
		case "identify":
			color = Yellow
		case "page":
			color = Dim
		}
		fmt.Printf("  %s%-10s%s %-28s %-24s %s\n", color, call, Reset, event, userID, sentAt.Format("15:04:05"))
	}
}

func analyticsShowMetrics() {
	if !reachable(analyticsDB, "analytics") {
		return
	}
	rows, err := analyticsDB.Query(`SELECT metric_date, event_name, event_count
		FROM analytics_metrics ORDER BY metric_date DESC, event_name LIMIT 30`)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()

	fmt.Printf("  %s%-12s %-28s %s%s\n", Bold, "DATE", "EVENT", "COUNT", Reset)
	fmt.Printf("  %s%s%s\n", Dim, strings.Repeat("-", 55), Reset)
	for rows.Next() {
		var date time.Time
		var event string
		var count int
		if err := rows.Scan(&date, &event, &count); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		bar := strings.Repeat("#", min(count, 40))
		fmt.Printf("  %-12s %-28s %s%s%s %d\n", date.Format("2006-01-02"), event, Green, bar, Reset, count)
	}
}

func analyticsShowToday() {
	if !reachable(analyticsDB, "analytics") {
		return
	}
	today := time.Now().UTC().Format("2006-01-02")
	rows, err := analyticsDB.Query(`SELECT event_name, event_count
		FROM analytics_metrics WHERE metric_date = $1 ORDER BY event_name`, today)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()

	fmt.Printf("  %s%sToday (%s)%s\n", Bold, White, today, Reset)
	total := 0
	for rows.Next() {
		var event string
		var count int
		if err := rows.Scan(&event, &count); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		bar := strings.Repeat("#", min(count, 40))
		fmt.Printf("  %-28s %s%s%s %d\n", event, Cyan, bar, Reset, count)
		total += count
	}
	fmt.Printf("  %stotal: %d%s\n", Dim, total, Reset)
}

func analyticsShowRevenue() {
	if !reachable(analyticsDB, "analytics") {
		return
	}
	rows, err := analyticsDB.Query(`SELECT event_name, revenue::text
		FROM analytics_metrics WHERE revenue <> 0 ORDER BY metric_date DESC, event_name`)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()

	byEvent := map[string]decimal.Decimal{}
	var order []string
	for rows.Next() {
		var event, raw string
		if err := rows.Scan(&event, &raw); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if _, seen := byEvent[event]; !seen {
			order = append(order, event)
		}
		byEvent[event] = byEvent[event].Add(amount)
	}

	fmt.Printf("  %s%sRevenue by event%s\n", Bold, White, Reset)
	total := decimal.Zero
	for _, event := range order {
		fmt.Printf("  %-28s %s%12s%s\n", event, Green, byEvent[event].StringFixed(2), Reset)
		total = total.Add(byEvent[event])
	}
	fmt.Printf("  %stotal: %s%s\n", Dim, total.StringFixed(2), Reset)
}

// ---------------------------------------------------------------------------
// Shared DB helpers
// ---------------------------------------------------------------------------

func showIdempotencyKeys(db *sql.DB, label string) {
	if !reachable(db, label) {
		return
	}
	rows, err := db.Query("SELECT message_id, processed_at FROM idempotency_keys ORDER BY processed_at DESC LIMIT 10")
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()
	fmt.Printf("  %s%-38s %s%s\n", Bold, "MESSAGE_ID", "PROCESSED_AT", Reset)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return
		}
		fmt.Printf("  %-38s %s\n", id, at.Format("2006-01-02 15:04:05"))
	}
}

func showTables(db *sql.DB, label string) {
	if !reachable(db, label) {
		return
	}
	rows, err := db.Query("SELECT tablename FROM pg_tables WHERE schemaname = 'public'")
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()
	fmt.Printf("  %s%s%s tables:\n", Bold, label, Reset)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return
		}
		fmt.Printf("  - %s\n", name)
	}
}

func rawSQL(db *sql.DB, label, query string) {
	if !reachable(db, label) {
		return
	}
	rows, err := db.Query(query)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	defer rows.Close()
	cols, _ := rows.Columns()
	fmt.Printf("  %s%s%s\n", Bold, strings.Join(cols, "\t"), Reset)
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
			return
		}
		parts := make([]string, len(cols))
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			parts[i] = fmt.Sprintf("%v", v)
		}
		fmt.Printf("  %s\n", strings.Join(parts, "\t"))
	}
}
