package service

import (
	"fmt"
	"sort"
	"strings"
)

func verificationEmailTemplate(username, verifyURL, appName string) (string, string) {
	subject := fmt.Sprintf("Verify your email for %s", appName)
	body := fmt.Sprintf(`Hi %s,

Thanks for signing up! Please verify your email address by clicking this link:
%s

This link expires in 24 hours.

If you didn't create an account, you can safely ignore this email.

Best,
The %s Team`, username, verifyURL, appName)

	return subject, body
}

func passwordResetEmailTemplate(username, resetURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`Hi %s,

You requested to reset your password. Click this link to choose a new one:
%s

This link expires in 1 hour and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, username, resetURL, appName)

	return subject, body
}

func submissionNotificationTemplate(formTitle string, data map[string]any, appName string) (string, string) {
	subject := fmt.Sprintf("New submission for %q", formTitle)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&rows, "%s: %v\n", k, data[k])
	}

	body := fmt.Sprintf(`Your form %q just received a new submission:

%s
Best,
The %s Team`, formTitle, rows.String(), appName)

	return subject, body
}
