package services

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"hugo-writer/pkg/config"
)

// CommitPost stages and commits a single stored post file. The repository
// layer guarantees a deterministic <date>-<slug>.md filename, so the
// commit references exactly the file that was written.
func CommitPost(postPath, message string) (string, error) {
	rel, err := filepath.Rel(config.SiteRoot, postPath)
	if err != nil {
		rel = postPath
	}

	addCmd := exec.Command("git", "add", rel)
	addCmd.Dir = config.SiteRoot
	if out, err := addCmd.CombinedOutput(); err != nil {
		return string(out), err
	}

	if message == "" {
		message = fmt.Sprintf("Update %s via hugo-writer: %s", rel, time.Now().Format("2006-01-02 15:04:05"))
	}
	commitCmd := exec.Command("git",
		"-c", "user.name="+config.GitUserName,
		"-c", "user.email="+config.GitUserEmail,
		"commit", "-m", message)
	commitCmd.Dir = config.SiteRoot
	out, err := commitCmd.CombinedOutput()
	return string(out), err
}

// ExecuteGitWithToken runs a git command against the remote with the OAuth
// token injected into the URL, scrubbing both from the returned log.
func ExecuteGitWithToken(dir, token string, args ...string) (error, string) {
	cmdGetUrl := exec.Command("git", "remote", "get-url", config.GitRemote)
	cmdGetUrl.Dir = dir
	outUrl, err := cmdGetUrl.Output()
	if err != nil {
		return err, "Failed to get remote url"
	}
	remoteUrl := strings.TrimSpace(string(outUrl))
	u, err := url.Parse(remoteUrl)
	if err != nil {
		return err, "Invalid remote url"
	}
	u.User = url.UserPassword("oauth2", token)
	authenticatedUrl := u.String()
	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == config.GitRemote {
			newArgs[i] = authenticatedUrl
		}
	}
	cmd := exec.Command("git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	safeLog := strings.ReplaceAll(string(output), token, "***")
	safeLog = strings.ReplaceAll(safeLog, authenticatedUrl, remoteUrl)
	return err, safeLog
}

// SyncSite pulls the site repository.
func SyncSite(token string) (error, string) {
	return ExecuteGitWithToken(config.SiteRoot, token, "pull", config.GitRemote, config.GitBranch)
}

// PushSite pushes local commits to the remote.
func PushSite(token string) (error, string) {
	return ExecuteGitWithToken(config.SiteRoot, token, "push", config.GitRemote, config.GitBranch)
}
