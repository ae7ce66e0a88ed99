package validate

import (
	"errors"
	"fmt"
	"strings"
)

const MaxInstanceLen = 253

// Message checks the post content before any network call is made.
func Message(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("please enter some content to post")
	}
	return nil
}

func Handle(handle string) error {
	if strings.TrimSpace(handle) == "" {
		return errors.New("empty handle")
	}
	return nil
}

func Password(password string) error {
	if password == "" {
		return errors.New("empty password")
	}
	return nil
}

// Instance checks a user-supplied Mastodon instance host. The form asks for a
// bare domain; anything with a scheme or a path is a paste mistake.
func Instance(instance string) error {
	instance = strings.TrimSpace(instance)
	switch {
	case instance == "":
		return errors.New("empty instance")
	case len(instance) > MaxInstanceLen:
		return fmt.Errorf("instance too long; max %d characters", MaxInstanceLen)
	case strings.Contains(instance, "://"):
		return errors.New("enter the instance domain without https://")
	case strings.ContainsAny(instance, "/ "):
		return errors.New("instance must be a bare domain, e.g. mastodon.social")
	}
	return nil
}
