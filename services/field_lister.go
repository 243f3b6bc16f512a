package services

import (
	"fmt"
	"io"

	"launchinsight/models"
)

// FieldSource はフィールドメタデータを返すクライアントです
type FieldSource interface {
	ListFields() ([]models.FieldDescriptor, error)
}

// FieldLister はJIRAのフィールドIDと名前を一覧表示します
type FieldLister struct {
	source FieldSource
	out    io.Writer
}

// NewFieldLister は新しいフィールド一覧表示を作成します
func NewFieldLister(source FieldSource, out io.Writer) *FieldLister {
	return &FieldLister{source: source, out: out}
}

// Run はJIRAが返した順にフィールドを出力します
func (l *FieldLister) Run() error {
	fields, err := l.source.ListFields()
	if err != nil {
		return err
	}

	for _, f := range fields {
		if _, err := fmt.Fprintf(l.out, "ID: %s, Name: %s\n", f.ID, f.Name); err != nil {
			return fmt.Errorf("出力エラー: %w", err)
		}
	}
	return nil
}
