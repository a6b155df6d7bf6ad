// Package tools exposes speech and dictionary editing as MCP tools. Every tool
// answers with a single text message, including on failure.
package tools

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/simplevoice/internal/voice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "simplevoice"

type SayInput struct {
	Text string `json:"text" jsonschema:"読み上げたいテキスト（日本語・英語混在可能）"`
}

type AddDictionaryEntryInput struct {
	English  string `json:"english" jsonschema:"英単語、略語、または拡張子。複数の場合はカンマ区切り（例: hdmi,api,csv,.py,.csv または 1つ,2つ,3つ）"`
	Katakana string `json:"katakana" jsonschema:"カタカナ読み。複数の場合はカンマ区切り（例: エイチディーエムアイ,エーピーアイ,シーエスブイ,ドットパイ,ドットシーエスブイ または ひとつ,ふたつ,みっつ）"`
}

type RemoveDictionaryEntryInput struct {
	English string `json:"english" jsonschema:"削除する英単語。複数の場合はカンマ区切り（例: hdmi,api,.py または test,1つ,2つ）"`
}

type ListDictionaryEntriesInput struct{}

type Server struct {
	speaker    *Speaker
	dictionary Dictionary
	version    string
}

func NewServer(speaker *Speaker, dictionary Dictionary, version string) *Server {
	return &Server{
		speaker:    speaker,
		dictionary: dictionary,
		version:    version,
	}
}

func sayDescription(model string) string {
	return fmt.Sprintf("テキストを%sで読み上げます。\n", voice.Describe(model)) +
		"ユーザーにお知らせするときはこのキャラクターになりきって楽しませながら報告しましょう！\n\n" +
		"日本語のテキストを音声合成し、バックグラウンドで再生します。\n" +
		"英単語が含まれている場合は自動的にカタカナに変換されます。\n\n" +
		"Returns:\n    成功時は\"✓\"、エラー時はエラーメッセージ"
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// NewMCPServer creates an MCP server with all tools registered.
func (s *Server) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: s.version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "say",
		Description: sayDescription(s.speaker.Model()),
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SayInput) (*mcp.CallToolResult, any, error) {
		return textResult(s.speaker.Say(ctx, input.Text)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_dictionary_entry",
		Description: "カスタム辞書に新しい英単語とカタカナ読みのペアを登録します。HDMIやAPIなどの略語や、.pyのような拡張子も登録できます。複数登録する場合はカンマ区切りで指定できます。",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input AddDictionaryEntryInput) (*mcp.CallToolResult, any, error) {
		return textResult(AddEntries(s.dictionary, input.English, input.Katakana)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_dictionary_entry",
		Description: "カスタム辞書から指定した英単語のエントリを削除します。複数削除する場合はカンマ区切りで指定できます。",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input RemoveDictionaryEntryInput) (*mcp.CallToolResult, any, error) {
		return textResult(RemoveEntries(s.dictionary, input.English)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_dictionary_entries",
		Description: "カスタム辞書に登録されているすべての英単語と読み方を表示します。",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ ListDictionaryEntriesInput) (*mcp.CallToolResult, any, error) {
		return textResult(ListEntries(s.dictionary)), nil, nil
	})

	return server
}

// Run serves the tools on transport until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if err := s.NewMCPServer().Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp.Server.Run > %w", err)
	}
	return nil
}
