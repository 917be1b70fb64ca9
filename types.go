package pdfgenie

// --- Domain types ---

// Upload is one raw document handed to the knowledge base builder.
type Upload struct {
	Name    string
	Content []byte
}

// Document is the extracted text of one ingested upload.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Chunk is a bounded span of document text, the unit of embedding and retrieval.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"-"`
}

// ScoredChunk is a chunk with a similarity score from a vector search.
// Score is in [0, 1]; higher means more relevant.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}

// Message is a single conversation turn. Immutable once created.
type Message struct {
	Text string `json:"text"`
	User bool   `json:"is_user"`
}

// UserMessage creates a user turn.
func UserMessage(text string) Message {
	return Message{Text: text, User: true}
}

// BotMessage creates an assistant turn.
func BotMessage(text string) Message {
	return Message{Text: text, User: false}
}

// --- LLM protocol types ---

type ChatMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// --- ChatMessage constructors ---

func SystemChatMessage(text string) ChatMessage {
	return ChatMessage{Role: "system", Content: text}
}

func UserChatMessage(text string) ChatMessage {
	return ChatMessage{Role: "user", Content: text}
}
