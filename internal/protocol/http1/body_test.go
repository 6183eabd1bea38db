package http1

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/indigo-web/h1frame/config"
	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/transport"
	"github.com/indigo-web/h1frame/transport/dummy"
	"github.com/stretchr/testify/require"
)

func getRequestWithBody(hdrs *headers.Headers, body ...string) (*http.Request, *dummy.Client) {
	client := dummy.NewStringClient(body...).Once()
	return &http.Request{Headers: hdrs, Body: client}, client
}

func plainHeaders(body ...string) *headers.Headers {
	return headers.FromPairs(headers.ContentLength, strconv.Itoa(len(strings.Join(body, ""))))
}

func TestBody_Plain(t *testing.T) {
	t.Run("single read", func(t *testing.T) {
		const sample = "Hello, world!"
		request, _ := getRequestWithBody(plainHeaders(sample), sample)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, sample, string(data))
	})

	t.Run("multiple reads", func(t *testing.T) {
		sample := []string{"Hel", "lo, ", "wor", "ld!"}
		request, _ := getRequestWithBody(plainHeaders(sample...), sample...)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))
	})

	t.Run("next message stays in the channel", func(t *testing.T) {
		first, second := strings.Repeat("a", 10), strings.Repeat("b", 10)
		request, client := getRequestWithBody(plainHeaders(first), first+second)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Retrieve()
		require.ErrorIs(t, err, io.EOF)
		require.Equal(t, first, string(data))

		data, err = body.Retrieve()
		require.ErrorIs(t, err, io.EOF)
		require.Empty(t, data)

		require.Equal(t, second, string(client.Rest()))
	})

	t.Run("no body", func(t *testing.T) {
		request, client := getRequestWithBody(headers.New(), "GET / HTTP/1.1\r\n")
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Empty(t, data)
		require.Empty(t, client.Timeouts())
	})

	t.Run("zero length", func(t *testing.T) {
		request, _ := getRequestWithBody(headers.FromPairs(headers.ContentLength, "0"))
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)
		require.NoError(t, body.Discard())
	})

	t.Run("unexpected end", func(t *testing.T) {
		request, _ := getRequestWithBody(headers.FromPairs(headers.ContentLength, "10"), "abc")
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		_, err = body.Bytes()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("repeated equal lengths", func(t *testing.T) {
		request, _ := getRequestWithBody(
			headers.FromPairs(headers.ContentLength, "3, 3", headers.ContentLength, "3"), "abc",
		)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, "abc", string(data))
	})

	t.Run("bad length", func(t *testing.T) {
		for _, value := range []string{"3, 4", "-1", "+1", "abc", "0x10", "99999999999999999999999"} {
			request, _ := getRequestWithBody(headers.FromPairs(headers.ContentLength, value))
			_, err := NewRequestBody(request, config.Default().Body, testTimeout)
			require.ErrorIs(t, err, status.ErrBadContentLength, value)
		}
	})

	t.Run("too large", func(t *testing.T) {
		request, _ := getRequestWithBody(headers.FromPairs(headers.ContentLength, "5"), "hello")
		_, err := NewRequestBody(request, config.Body{MaxSize: 4}, testTimeout)
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("declared length is not allocated up front", func(t *testing.T) {
		request, err := getReader().ParseRequest(
			"POST / HTTP/1.1\r\nHost: a\r\nContent-Length: 400000000\r\n\r\nx",
		)
		require.NoError(t, err)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		_, err = body.Bytes()
		runtime.ReadMemStats(&after)

		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(8<<20))
	})
}

func TestBody_Chunked(t *testing.T) {
	const (
		chunked  = "7\r\nMozilla\r\n9\r\nDeveloper\r\n7\r\nNetwork\r\n0\r\n\r\n"
		wantBody = "MozillaDeveloperNetwork"
	)

	chunkedHeaders := func() *headers.Headers {
		return headers.FromPairs(headers.TransferEncoding, "chunked")
	}

	t.Run("whole", func(t *testing.T) {
		request, _ := getRequestWithBody(chunkedHeaders(), chunked)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, wantBody, string(data))
	})

	t.Run("as reader", func(t *testing.T) {
		request, _ := getRequestWithBody(chunkedHeaders(), chunked)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, wantBody, string(data))
	})

	t.Run("next message stays in the channel", func(t *testing.T) {
		const next = "GET / HTTP/1.1\r\n\r\n"
		request, client := getRequestWithBody(chunkedHeaders(), chunked+next)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)
		require.NoError(t, body.Discard())
		require.Equal(t, next, string(client.Rest()))
	})

	t.Run("final coding", func(t *testing.T) {
		request, _ := getRequestWithBody(
			headers.FromPairs(headers.TransferEncoding, "gzip", headers.TransferEncoding, "Chunked"), chunked,
		)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, wantBody, string(data))
	})

	t.Run("overrides content length", func(t *testing.T) {
		request, _ := getRequestWithBody(
			headers.FromPairs(headers.TransferEncoding, "chunked", headers.ContentLength, "1"), chunked,
		)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, wantBody, string(data))
	})

	t.Run("unsupported coding", func(t *testing.T) {
		request, _ := getRequestWithBody(headers.FromPairs(headers.TransferEncoding, "gzip"))
		_, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.ErrorIs(t, err, status.ErrUnsupportedEncoding)
	})

	t.Run("too large", func(t *testing.T) {
		request, _ := getRequestWithBody(chunkedHeaders(), chunked)
		body, err := NewRequestBody(request, config.Body{MaxSize: 10}, testTimeout)
		require.NoError(t, err)

		_, err = body.Bytes()
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("bad chunk", func(t *testing.T) {
		request, _ := getRequestWithBody(chunkedHeaders(), "zz\r\nhello\r\n0\r\n\r\n")
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		_, err = body.Bytes()
		require.ErrorIs(t, err, status.ErrBadChunk)
		require.Equal(t, status.BadRequest, status.CodeOf(err))
	})

	t.Run("unexpected end", func(t *testing.T) {
		request, _ := getRequestWithBody(chunkedHeaders(), "7\r\nMozi")
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		_, err = body.Bytes()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestBody_Response(t *testing.T) {
	newResponse := func(code status.Code, hdrs *headers.Headers, body ...string) (*http.Response, *dummy.Client) {
		client := dummy.NewStringClient(body...).Once()
		return &http.Response{Code: code, Headers: hdrs, Body: client}, client
	}

	t.Run("no content", func(t *testing.T) {
		for _, code := range []status.Code{status.Continue, status.NoContent, status.NotModified} {
			response, client := newResponse(code, headers.FromPairs(headers.ContentLength, "5"), "hello")
			body, err := NewResponseBody(response, config.Default().Body, testTimeout)
			require.NoError(t, err)

			data, err := body.Bytes()
			require.NoError(t, err)
			require.Empty(t, data)
			require.Equal(t, "hello", string(client.Rest()))
		}
	})

	t.Run("till the end", func(t *testing.T) {
		response, _ := newResponse(status.OK, headers.New(), "Hello, ", "world!")
		body, err := NewResponseBody(response, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))
	})

	t.Run("unknown coding reads till the end", func(t *testing.T) {
		response, _ := newResponse(status.OK, headers.FromPairs(headers.TransferEncoding, "gzip"), "raw")
		body, err := NewResponseBody(response, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, "raw", string(data))
	})

	t.Run("till the end too large", func(t *testing.T) {
		response, _ := newResponse(status.OK, headers.New(), "Hello, ", "world!")
		body, err := NewResponseBody(response, config.Body{MaxSize: 8}, testTimeout)
		require.NoError(t, err)

		_, err = body.Bytes()
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("content length", func(t *testing.T) {
		response, client := newResponse(status.OK, headers.FromPairs(headers.ContentLength, "2"), "hi there")
		body, err := NewResponseBody(response, config.Default().Body, testTimeout)
		require.NoError(t, err)

		data, err := body.Bytes()
		require.NoError(t, err)
		require.Equal(t, "hi", string(data))
		require.Equal(t, " there", string(client.Rest()))
	})
}

// Channels may return the last data together with an error, as io.Reader is allowed to.
func TestBody_DataWithError(t *testing.T) {
	streamOf := func(raw string, n int) *transport.Stream {
		return transport.NewStream(iotest.DataErrReader(strings.NewReader(raw)), make([]byte, n))
	}

	t.Run("till the end", func(t *testing.T) {
		for n := 1; n <= 8; n++ {
			t.Run(fmt.Sprintf("%d bytes per read", n), func(t *testing.T) {
				ch := streamOf("HTTP/1.1 200 OK\r\n\r\nhello", n)
				response, err := getReader().ReadResponse(context.Background(), ch, testTimeout)
				require.NoError(t, err)
				body, err := NewResponseBody(response, config.Default().Body, testTimeout)
				require.NoError(t, err)

				data, err := body.Bytes()
				require.NoError(t, err)
				require.Equal(t, "hello", string(data))
			})
		}
	})

	t.Run("plain", func(t *testing.T) {
		for n := 1; n <= 8; n++ {
			t.Run(fmt.Sprintf("%d bytes per read", n), func(t *testing.T) {
				ch := streamOf("POST / HTTP/1.1\r\nHost: a\r\nContent-Length: 5\r\n\r\nhello", n)
				request, err := getReader().ReadRequest(context.Background(), ch, testTimeout)
				require.NoError(t, err)
				body, err := NewRequestBody(request, config.Default().Body, testTimeout)
				require.NoError(t, err)

				data, err := body.Bytes()
				require.NoError(t, err)
				require.Equal(t, "hello", string(data))
			})
		}
	})

	t.Run("chunked", func(t *testing.T) {
		const raw = "POST / HTTP/1.1\r\nHost: a\r\nTransfer-Encoding: chunked\r\n\r\n" +
			"5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n"

		for n := 1; n <= 8; n++ {
			t.Run(fmt.Sprintf("%d bytes per read", n), func(t *testing.T) {
				request, err := getReader().ReadRequest(context.Background(), streamOf(raw, n), testTimeout)
				require.NoError(t, err)
				body, err := NewRequestBody(request, config.Default().Body, testTimeout)
				require.NoError(t, err)

				data, err := body.Bytes()
				require.NoError(t, err)
				require.Equal(t, "hello world", string(data))
			})
		}
	})

	t.Run("plain cut short", func(t *testing.T) {
		ch := streamOf("POST / HTTP/1.1\r\nHost: a\r\nContent-Length: 10\r\n\r\nhello", 4)
		request, err := getReader().ReadRequest(context.Background(), ch, testTimeout)
		require.NoError(t, err)
		body, err := NewRequestBody(request, config.Default().Body, testTimeout)
		require.NoError(t, err)

		_, err = body.Bytes()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestBody_ChunkedLeftovers(t *testing.T) {
	const next = "GET / HTTP/1.1\r\n\r\n"
	client := dummy.NewStringClient("5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n" + next).Once()
	request := &http.Request{Headers: headers.FromPairs(headers.TransferEncoding, "chunked"), Body: client}
	body, err := NewRequestBody(request, config.Default().Body, testTimeout)
	require.NoError(t, err)

	data, err := body.Bytes()
	require.NoError(t, err)
	require.Equal(t, "hello world", string(data))
	require.Equal(t, 1, client.Unshifts())
	require.Equal(t, next, string(client.Rest()))
}
