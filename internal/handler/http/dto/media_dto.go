package dto

// UploadURLRequest asks for a presigned upload target.
type UploadURLRequest struct {
	Kind        string `json:"kind" binding:"required,mediakind"`
	ContentType string `json:"content_type" binding:"required"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

// AddTrackRequest registers an uploaded audio object as a track.
type AddTrackRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Artist   string `json:"artist" binding:"max=200"`
	AudioKey string `json:"audio_key" binding:"required,max=512"`
}
