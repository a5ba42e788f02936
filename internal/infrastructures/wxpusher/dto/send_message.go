package dto

// ContentTypeText is wxpusher's discriminator for plain text messages.
const ContentTypeText = 1

type SendMessageRequest struct {
	AppToken    string   `json:"appToken"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	ContentType int      `json:"contentType"`
	UIDs        []string `json:"uids"`
	URL         string   `json:"url"`
}
