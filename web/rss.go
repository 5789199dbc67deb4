package web

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/extopy/extopy-go/db"
	"github.com/extopy/extopy-go/domain"
	"github.com/extopy/extopy-go/util"
	"github.com/gorilla/feeds"
)

const rssPageSize = 50

// GetRSS renders a user's timeline as RSS. The timeline is queried with
// the owner as viewer, so followers-only visibility never applies to
// their own posts.
func GetRSS(conf *util.AppConfig, database *db.DB, username string) (string, error) {

	if username == "" {
		return "", errors.New("username is required")
	}

	err, user := database.ReadUserByUsername(username)
	if err != nil || user == nil {
		log.Println(fmt.Sprintf("Could not find user %s!", username), err)
		return "", errors.New("error retrieving user by username")
	}

	ctx := domain.UserContext{UserId: user.Id}
	err, posts := database.ReadUserTimeline(user.Id, ctx, rssPageSize, 0)
	if err != nil || posts == nil {
		log.Println(fmt.Sprintf("Could not get posts from %s!", username), err)
		return "", errors.New("error retrieving posts by username")
	}

	link := fmt.Sprintf("http://%s:%d/feed?username=%s", conf.Conf.Host, conf.Conf.HttpPort, username)

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Extopy Posts - %s", username),
		Link:        &feeds.Link{Href: link},
		Description: fmt.Sprintf("posts published by %s", username),
		Author:      &feeds.Author{Name: user.DisplayName, Email: fmt.Sprintf("%s@extopy", username)},
		Created:     time.Now(),
	}

	var feedItems []*feeds.Item
	for _, post := range *posts {
		feedItems = append(feedItems,
			&feeds.Item{
				Id:      post.Id.String(),
				Title:   post.Published.Format(util.DateTimeFormat()),
				Link:    &feeds.Link{Href: fmt.Sprintf("http://%s:%d/api/posts/%s", conf.Conf.Host, conf.Conf.HttpPort, post.Id)},
				Content: post.Body,
				Author:  &feeds.Author{Name: post.Author.Username, Email: fmt.Sprintf("%s@extopy", post.Author.Username)},
				Created: post.Published,
			})
	}

	feed.Items = feedItems
	return feed.ToRss()
}
