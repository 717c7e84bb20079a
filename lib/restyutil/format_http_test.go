package restyutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	lock     sync.Mutex
	messages map[string]string
}

func (m *memoryOutput) Write(id, contents string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.messages[id] = contents
}

func TestRedactForm(t *testing.T) {
	require.Equal(
		t,
		"password=%5BREDACTED%5D&userId=someone",
		RedactForm("userId=someone&password=hunter2", "password"),
	)
	require.Equal(t, "userId=someone", RedactForm("userId=someone", "password"))
	require.Equal(t, `{"password":"x"}`, RedactForm(`{"password":"x"}`))
}

func TestDumpMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	DumpMessages(client, out, "password")

	_, err := client.R().
		SetFormData(map[string]string{
			"userId":   "someone",
			"password": "hunter2",
		}).
		Post(server.URL + "/login")
	require.NoError(t, err)

	require.Len(t, out.messages, 1)
	message := out.messages["1"]
	require.NotContains(t, message, "hunter2")
	require.Contains(t, message, "userId=someone")
	require.Contains(t, message, "X-Test: yes")
	require.True(t, strings.HasSuffix(message, "hello"))
}

func TestDumpMessagesNilOutput(t *testing.T) {
	client := resty.New()
	DumpMessages(client, nil)
}
