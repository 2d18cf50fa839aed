package services

import (
	"os/exec"

	"hugo-writer/pkg/config"
)

// BuildSite runs a hugo preview build of the site, drafts included.
func BuildSite() (error, string) {
	cmd := exec.Command("hugo",
		"--source", config.SiteRoot,
		"--destination", "public",
		"--baseURL", config.GetAppURL()+config.PreviewURL,
		"--cleanDestinationDir",
		"-D",
	)
	output, err := cmd.CombinedOutput()
	return err, string(output)
}
