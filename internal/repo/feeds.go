package repo

import (
	"inkstream/internal/db"
	"inkstream/internal/models"

	"gorm.io/gorm"
)

// feedQuery is the base query every feed shares: posts with author and
// group eagerly joined, newest first, tie-broken by id for a stable order.
func feedQuery() *gorm.DB {
	return db.DB.Model(&models.Post{}).
		Preload("Author").
		Preload("Group").
		Order("published_at DESC, id DESC")
}

func pageOf(query *gorm.DB, countQuery *gorm.DB, page int) (Page[models.Post], error) {
	var result Page[models.Post]

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return result, err
	}

	number, totalPages, offset := clampPage(page, total)

	var posts []models.Post
	if err := query.Limit(PageSize).Offset(offset).Find(&posts).Error; err != nil {
		return result, err
	}
	if err := fillCommentCounts(posts); err != nil {
		return result, err
	}

	result.Items = posts
	result.Number = number
	result.TotalPages = totalPages
	result.Total = total
	return result, nil
}

// GlobalFeed returns one page of all posts.
func GlobalFeed(page int) (Page[models.Post], error) {
	return pageOf(feedQuery(), db.DB.Model(&models.Post{}), page)
}

// GroupFeed returns the group identified by slug and one page of its posts.
// Unknown slugs surface gorm.ErrRecordNotFound.
func GroupFeed(slug string, page int) (*models.Group, Page[models.Post], error) {
	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, Page[models.Post]{}, err
	}

	feed, err := pageOf(
		feedQuery().Where("group_id = ?", group.ID),
		db.DB.Model(&models.Post{}).Where("group_id = ?", group.ID),
		page,
	)
	return &group, feed, err
}

// AuthorFeed returns the author identified by username and one page of
// their posts. Unknown usernames surface gorm.ErrRecordNotFound.
func AuthorFeed(username string, page int) (*models.User, Page[models.Post], error) {
	author, err := FindUserByUsername(username)
	if err != nil {
		return nil, Page[models.Post]{}, err
	}

	feed, err := pageOf(
		feedQuery().Where("author_id = ?", author.ID),
		db.DB.Model(&models.Post{}).Where("author_id = ?", author.ID),
		page,
	)
	return author, feed, err
}

// SubscriptionFeed returns one page of posts whose author the viewer
// follows. A viewer with no subscriptions gets an empty page, not an error.
func SubscriptionFeed(viewerID uint, page int) (Page[models.Post], error) {
	followed := db.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", viewerID)

	return pageOf(
		feedQuery().Where("author_id IN (?)", followed),
		db.DB.Model(&models.Post{}).Where("author_id IN (?)", followed),
		page,
	)
}

// fillCommentCounts 批量填充帖子的评论数量
func fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	err := db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return err
	}

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}
