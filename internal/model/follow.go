package model

import "time"

// Follow is one directed edge: FollowerID follows FolloweeID. Both directions
// of the friend relation are answered from this single row, so the
// followings/followers views cannot drift apart.
// idx_follow_pair = (follower_id, followee_id), unique to keep adds idempotent.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"followerId" gorm:"not null;index:idx_follow_follower;index:idx_follow_pair,unique"`
	FolloweeID uint      `json:"followeeId" gorm:"not null;index:idx_follow_followee;index:idx_follow_pair,unique"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName pins the table name for the edge rows.
func (Follow) TableName() string { return "follows" }
