// Package dreamina provides a Go client for Dreamina-compatible image
// generation gateways.
//
// The gateway exposes an OpenAI-style endpoint, POST /v1/images/generations,
// that accepts a prompt and an aspect ratio and answers with a list of image
// URLs. The client submits one request and downloads the results.
//
// # Basic Usage
//
//	client := dreamina.NewClient("your-session-id")
//
//	resp, err := client.Image.Generate(ctx, &dreamina.GenerateRequest{
//	    Prompt: "an apple on a wooden table",
//	    Ratio:  dreamina.Ratio16x9,
//	})
//	if err != nil {
//	    return err
//	}
//
//	for i, u := range resp.URLs() {
//	    art, err := client.Download(ctx, u, "./out", i)
//	    ...
//	}
//
// # Error Handling
//
//	resp, err := client.Image.Generate(ctx, req)
//	if err != nil {
//	    switch {
//	    case dreamina.IsTimeout(err):
//	        // generation took longer than the configured bound
//	    case errors.Is(err, dreamina.ErrUnexpectedResponse):
//	        // 2xx answer without a usable "data" list
//	    default:
//	        if e, ok := dreamina.AsError(err); ok {
//	            fmt.Println(e.DetailText())
//	        }
//	    }
//	}
//
// # Configuration
//
//	client := dreamina.NewClient("session-id",
//	    dreamina.WithBaseURL("http://localhost:5200"),
//	    dreamina.WithTimeout(10*time.Minute),
//	    dreamina.WithDownloadTimeout(time.Minute),
//	)
package dreamina
