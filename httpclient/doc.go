// Package httpclient is the HTTP client used to reach transcription
// sidecars.
//
// It resolves paths against a base URL, encodes JSON, text and multipart
// bodies, sends an optional bearer token, and classifies non-2xx responses
// into typed *Error values. It never retries: a failed sidecar call surfaces
// to the caller as is.
//
//	client, _ := httpclient.New(httpclient.Config{BaseURL: "http://localhost:8387", Timeout: 2 * time.Minute})
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/transcribe",
//	    Body: &httpclient.MultipartBody{
//	        Files: []httpclient.FileField{{FieldName: "audio", FileName: "clip.wav", Reader: f}},
//	    },
//	})
package httpclient
