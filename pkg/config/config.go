package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	// Content settings
	ContentDir = "./site/content/posts"
	SiteRoot   = "./site"
	ImageDir   = "./site/static/images/uploads"

	// StaticFolder is the site subfolder whose contents Hugo serves from
	// the URL root; a leading "<StaticFolder>/" segment is stripped when
	// converting a filesystem path to a site URL.
	StaticFolder = "static"

	DefaultAuthor   = "Aries"
	DefaultPageSize = 10

	// FileReadHeadLimit bounds how many bytes of a document the listing
	// path reads when extracting the summary fields.
	FileReadHeadLimit = int64(4096)

	// Git settings
	GitUserEmail = "bot@hugo-writer.local"
	GitUserName  = "Hugo Writer Bot"
	GitBranch    = "main"
	GitRemote    = "origin"

	// Hugo preview settings
	PreviewURL = "/preview/"
	PublicPath = "./site/public"
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	SiteRoot = getEnv("SITE_ROOT", "./site")
	ContentDir = getEnv("CONTENT_DIR", SiteRoot+"/content/posts")
	ImageDir = getEnv("IMAGE_DIR", SiteRoot+"/static/images/uploads")
	StaticFolder = getEnv("STATIC_FOLDER", "static")
	PublicPath = getEnv("PUBLIC_PATH", SiteRoot+"/public")

	DefaultAuthor = getEnv("DEFAULT_AUTHOR", "Aries")

	GitUserEmail = getEnv("GIT_USER_EMAIL", "bot@hugo-writer.local")
	GitUserName = getEnv("GIT_USER_NAME", "Hugo Writer Bot")
	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")

	if ps := os.Getenv("DEFAULT_PAGE_SIZE"); ps != "" {
		if val, err := strconv.Atoi(ps); err == nil && val > 0 {
			DefaultPageSize = val
		}
	}

	if hl := os.Getenv("FILE_READ_HEAD_LIMIT"); hl != "" {
		if val, err := strconv.ParseInt(hl, 10, 64); err == nil && val > 0 {
			FileReadHeadLimit = val
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}
