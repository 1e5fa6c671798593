// Package pinata provides a client for publishing files to the Pinata
// IPFS pinning service.
//
// The client performs pin operations over the service's HTTP API. Its
// central operation is PinFiles, which uploads a set of named file parts
// in a single multipart request:
//
//	client, err := pinata.New(pintypes.Credentials{
//	    APIKey:    os.Getenv("PINATA_API_KEY"),
//	    SecretKey: os.Getenv("PINATA_SECRET_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	result, err := client.PinFiles(ctx, []pintypes.FilePart{
//	    {Name: "1.2.3/cactus.js", Content: file, ContentType: "text/javascript"},
//	})
//	if err != nil {
//	    return err
//	}
//	if !result.OK() {
//	    return fmt.Errorf("pin rejected with status %d", result.StatusCode)
//	}
//
// A completed HTTP exchange always yields a PinResult, whatever the
// status code; errors are reserved for configuration and transport
// failures. Configuration follows the functional options pattern, and
// file-based operations go through a pluggable filesystem so tests can
// run against an in-memory one.
package pinata
