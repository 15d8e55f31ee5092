package blog

import (
	"net/url"
	"strconv"
)

// Redirect targets returned by mutations.

func IndexPath() string { return "/" }

func PostDetailPath(id int64) string { return "/posts/" + strconv.FormatInt(id, 10) + "/" }

func ProfilePath(username string) string { return "/profile/" + url.PathEscape(username) + "/" }

func CategoryPath(slug string) string { return "/category/" + url.PathEscape(slug) + "/" }
