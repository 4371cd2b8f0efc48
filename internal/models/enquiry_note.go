package models

import (
	"strconv"

	"gorm.io/gorm"
)

// EnquiryNote is one dashboard note attached to a category row by its
// primary key.
type EnquiryNote struct {
	gorm.Model
	EnquiryType Type   `gorm:"type:varchar(10);index:idx_note_enquiry"`
	EnquiryID   uint   `gorm:"index:idx_note_enquiry"`
	Author      string `gorm:"type:varchar(255)"`
	Text        string `gorm:"type:text"`
}

func (n EnquiryNote) Note() Note {
	return Note{
		ID:        strconv.FormatUint(uint64(n.ID), 10),
		Author:    n.Author,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}
