package feed

import (
	"yatube/internal/core/pagination"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// PostPage is one page of a newest-first post listing.
type PostPage struct {
	pagination.Page
	Posts []*post.Post
}

// Profile is an author's page as seen by a particular viewer.
type Profile struct {
	Author         *user.User
	Following      bool
	Followers      int64
	FollowingCount int64
	PostCount      int64
	Page           *PostPage
}
