package imap

import (
	"bytes"
	"crypto/tls"
	"testing"
	"time"

	"skillcli/internal/config"

	"github.com/emersion/go-imap"
)

const rawTestMessage = "From: Alice <alice@example.com>\r\n" +
	"To: Bob <bob@example.com>\r\n" +
	"Subject: Hi\r\n" +
	"Message-Id: <m1@example.com>\r\n" +
	"Date: Mon, 02 Jan 2006 15:04:05 -0700\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"hello body\r\n"

type mockClient struct {
	listNames  []string
	searchUids []uint32
	fetched    string
	loggedOut  bool
}

func (m *mockClient) Login(username, password string) error { return nil }
func (m *mockClient) Logout() error {
	m.loggedOut = true
	return nil
}
func (m *mockClient) StartTLS(config *tls.Config) error { return nil }
func (m *mockClient) Select(name string, readOnly bool) (*imap.MailboxStatus, error) {
	return &imap.MailboxStatus{Name: name}, nil
}
func (m *mockClient) Status(name string, items []imap.StatusItem) (*imap.MailboxStatus, error) {
	return &imap.MailboxStatus{Name: name, Messages: 3, Unseen: 1}, nil
}
func (m *mockClient) List(ref, name string, ch chan *imap.MailboxInfo) error {
	for _, mailbox := range m.listNames {
		ch <- &imap.MailboxInfo{Name: mailbox}
	}
	close(ch)
	return nil
}
func (m *mockClient) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	return m.searchUids, nil
}
func (m *mockClient) UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
	m.fetched = seqset.String()

	envelope := &imap.Envelope{
		Subject:   "Hi",
		MessageId: "<m1@example.com>",
		Date:      time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("", -7*3600)),
		From: []*imap.Address{{
			PersonalName: "Alice",
			MailboxName:  "alice",
			HostName:     "example.com",
		}},
		To: []*imap.Address{{
			MailboxName: "bob",
			HostName:    "example.com",
		}},
	}

	for _, uid := range m.searchUids {
		ch <- &imap.Message{
			Uid:      uid,
			Envelope: envelope,
			Body: map[*imap.BodySectionName]imap.Literal{
				{}: bytes.NewBufferString(rawTestMessage),
			},
		}
	}
	close(ch)
	return nil
}

func mockService(mock *mockClient) *Service {
	return &Service{Connector: func(cfg config.Config) (Client, error) {
		return mock, nil
	}}
}

func TestListFoldersWithMock(t *testing.T) {
	mock := &mockClient{listNames: []string{"INBOX", "Archive"}}
	svc := mockService(mock)

	folders, err := svc.ListFolders(config.Config{})
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}
	if folders[0] != "INBOX" || folders[1] != "Archive" {
		t.Fatalf("unexpected folders: %v", folders)
	}
	if !mock.loggedOut {
		t.Fatalf("expected logout to be called")
	}
}

func TestFetchRecentParsesMessages(t *testing.T) {
	mock := &mockClient{searchUids: []uint32{7}}
	svc := mockService(mock)

	messages, total, err := svc.FetchRecent(config.Config{}, "INBOX", 5)
	if err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	msg := messages[0]
	if msg.UID != 7 {
		t.Fatalf("unexpected uid: %d", msg.UID)
	}
	if msg.MessageID != "<m1@example.com>" {
		t.Fatalf("unexpected message id: %q", msg.MessageID)
	}
	if msg.Subject != "Hi" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if msg.TextBody != "hello body\r\n" {
		t.Fatalf("unexpected body: %q", msg.TextBody)
	}
	if msg.Folder != "INBOX" {
		t.Fatalf("unexpected folder: %q", msg.Folder)
	}
	if !mock.loggedOut {
		t.Fatalf("expected logout to be called")
	}
}

func TestFetchRecentHonorsLimit(t *testing.T) {
	mock := &mockClient{searchUids: []uint32{1, 2, 3, 4, 5}}
	svc := mockService(mock)

	if _, _, err := svc.FetchRecent(config.Config{}, "INBOX", 2); err != nil {
		t.Fatalf("fetch recent: %v", err)
	}
	if mock.fetched != "4:5" {
		t.Fatalf("expected fetch of newest two uids, got %q", mock.fetched)
	}
}

func TestStatusWithMock(t *testing.T) {
	mock := &mockClient{}
	svc := mockService(mock)

	status, err := svc.Status(config.Config{}, "INBOX")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Messages != 3 || status.Unseen != 1 {
		t.Fatalf("unexpected status: %d messages, %d unseen", status.Messages, status.Unseen)
	}
}
