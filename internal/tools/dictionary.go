package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/simplevoice/internal/dictionary"
)

// Dictionary is the part of the dictionary store the tools edit.
type Dictionary interface {
	ReloadIfStale()
	Upsert(key, reading string) (bool, error)
	Remove(key string) error
	List() []dictionary.Entry
}

// splitList splits a comma separated argument and trims every item.
func splitList(list string) []string {
	items := strings.Split(list, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

// AddEntries registers one pair, or several comma separated pairs, and
// describes the outcome.
func AddEntries(store Dictionary, english, katakana string) string {
	keys := splitList(english)
	readings := splitList(katakana)
	if len(keys) != len(readings) {
		return fmt.Sprintf("エラー: 英単語の数(%d)とカタカナの数(%d)が一致しません", len(keys), len(readings))
	}

	if len(keys) == 1 {
		_, message := addEntry(store, keys[0], readings[0])
		return message
	}

	lines := make([]string, 0, len(keys))
	succeeded := 0
	for i, key := range keys {
		ok, message := addEntry(store, key, readings[i])
		if ok {
			succeeded++
			lines = append(lines, fmt.Sprintf("✓ %s → %s", key, readings[i]))
		} else {
			lines = append(lines, fmt.Sprintf("✗ %s: %s", key, message))
		}
	}
	return strings.Join(lines, "\n") + "\n\n" + fmt.Sprintf("登録完了: %d/%d件成功", succeeded, len(keys))
}

func addEntry(store Dictionary, key, reading string) (bool, string) {
	updated, err := store.Upsert(key, reading)
	if errors.Is(err, dictionary.ErrEmptyEntry) {
		return false, "エラー: 英単語とカタカナの両方を指定してください"
	}
	if err != nil {
		return false, fmt.Sprintf("エラー: 辞書への登録に失敗しました - %v", err)
	}

	key = strings.ToLower(key)
	if updated {
		return true, fmt.Sprintf("✓ 辞書を更新しました: %s → %s", key, reading)
	}
	return true, fmt.Sprintf("✓ 辞書に登録しました: %s → %s", key, reading)
}

// RemoveEntries deletes one key, or several comma separated keys, and
// describes the outcome.
func RemoveEntries(store Dictionary, english string) string {
	keys := splitList(english)
	if len(keys) == 1 {
		_, message := removeEntry(store, keys[0])
		return message
	}

	lines := make([]string, 0, len(keys))
	succeeded := 0
	for _, key := range keys {
		ok, message := removeEntry(store, key)
		if ok {
			succeeded++
			lines = append(lines, fmt.Sprintf("✓ %s を削除", key))
		} else {
			lines = append(lines, fmt.Sprintf("✗ %s: %s", key, message))
		}
	}
	return strings.Join(lines, "\n") + "\n\n" + fmt.Sprintf("削除完了: %d/%d件成功", succeeded, len(keys))
}

func removeEntry(store Dictionary, key string) (bool, string) {
	err := store.Remove(key)
	if errors.Is(err, dictionary.ErrNotFound) {
		return false, fmt.Sprintf("エラー: '%s' は辞書に登録されていません", key)
	}
	if err != nil {
		return false, fmt.Sprintf("エラー: 辞書からの削除に失敗しました - %v", err)
	}
	return true, fmt.Sprintf("✓ 辞書から削除しました: %s", strings.ToLower(key))
}

// ListEntries renders every entry sorted by key.
func ListEntries(store Dictionary) string {
	store.ReloadIfStale()
	entries := store.List()
	if len(entries) == 0 {
		return "辞書は空です"
	}

	var builder strings.Builder
	builder.WriteString("カスタム辞書の内容:\n\n")
	for _, entry := range entries {
		fmt.Fprintf(&builder, "  %s → %s\n", entry.Key, entry.Reading)
	}
	fmt.Fprintf(&builder, "\n合計: %d エントリ", len(entries))
	return builder.String()
}
