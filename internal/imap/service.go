package imap

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"skillcli/internal/config"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

type Client interface {
	Login(username, password string) error
	Logout() error
	StartTLS(config *tls.Config) error
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Status(name string, items []imap.StatusItem) (*imap.MailboxStatus, error)
	List(ref, name string, ch chan *imap.MailboxInfo) error
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
}

type Service struct {
	Connector func(cfg config.Config) (Client, error)
}

func NewService() *Service {
	return &Service{Connector: Connect}
}

func Connect(cfg config.Config) (Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.IMAP.Host, cfg.IMAP.Port)
	var c *imapclient.Client
	var err error

	if cfg.IMAP.TLS {
		tlsConfig := &tls.Config{
			ServerName:         cfg.IMAP.Host,
			InsecureSkipVerify: cfg.IMAP.InsecureSkipVerify,
		}
		c, err = imapclient.DialTLS(addr, tlsConfig)
	} else {
		c, err = imapclient.Dial(addr)
		if err == nil && cfg.IMAP.StartTLS {
			tlsConfig := &tls.Config{
				ServerName:         cfg.IMAP.Host,
				InsecureSkipVerify: cfg.IMAP.InsecureSkipVerify,
			}
			if err := c.StartTLS(tlsConfig); err != nil {
				_ = c.Logout()
				return nil, err
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if err := c.Login(cfg.Auth.Username, cfg.Auth.Password); err != nil {
		_ = c.Logout()
		return nil, err
	}

	return c, nil
}

func (s *Service) withClient(cfg config.Config, fn func(Client) error) error {
	connector := s.Connector
	if connector == nil {
		connector = Connect
	}
	client, err := connector(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Logout()
	}()
	return fn(client)
}

func (s *Service) Status(cfg config.Config, folder string) (*imap.MailboxStatus, error) {
	var status *imap.MailboxStatus
	err := s.withClient(cfg, func(c Client) error {
		mb, err := c.Status(folder, []imap.StatusItem{imap.StatusMessages, imap.StatusUnseen})
		if err != nil {
			return err
		}
		status = mb
		return nil
	})
	return status, err
}

func (s *Service) ListFolders(cfg config.Config) ([]string, error) {
	folders := []string{}
	err := s.withClient(cfg, func(c Client) error {
		ch := make(chan *imap.MailboxInfo, 10)
		done := make(chan error, 1)
		go func() {
			done <- c.List("", "*", ch)
		}()
		for mbox := range ch {
			folders = append(folders, mbox.Name)
		}
		return <-done
	})
	return folders, err
}

func (s *Service) ListMessages(cfg config.Config, folder string, page, pageSize int) ([]MessageSummary, int, error) {
	var messages []MessageSummary
	var total int

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := s.withClient(cfg, func(c Client) error {
		if _, err := c.Select(folder, true); err != nil {
			return err
		}

		uids, err := c.UidSearch(imap.NewSearchCriteria())
		if err != nil {
			return err
		}
		sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
		total = len(uids)
		if total == 0 {
			return nil
		}

		end := total - (page-1)*pageSize
		if end <= 0 {
			return nil
		}
		start := end - pageSize
		if start < 0 {
			start = 0
		}
		subset := uids[start:end]
		if len(subset) == 0 {
			return nil
		}

		seqset := new(imap.SeqSet)
		seqset.AddNum(subset...)

		items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchFlags, imap.FetchUid, imap.FetchRFC822Size}
		ch := make(chan *imap.Message, len(subset))
		done := make(chan error, 1)
		go func() {
			done <- c.UidFetch(seqset, items, ch)
		}()
		for msg := range ch {
			if msg == nil || msg.Envelope == nil {
				continue
			}
			messages = append(messages, MessageSummary{
				UID:     msg.Uid,
				Subject: msg.Envelope.Subject,
				From:    formatIMAPAddresses(msg.Envelope.From),
				Date:    msg.Envelope.Date,
				Size:    msg.Size,
				Flags:   msg.Flags,
			})
		}
		return <-done
	})

	sort.Slice(messages, func(i, j int) bool { return messages[i].UID > messages[j].UID })

	return messages, total, err
}

// FetchRecent fetches the most recent messages of a folder, fully parsed.
// Returns the messages oldest-first and the folder's total message count.
func (s *Service) FetchRecent(cfg config.Config, folder string, limit int) ([]Message, int, error) {
	if limit <= 0 {
		limit = 10
	}

	var messages []Message
	var total int

	err := s.withClient(cfg, func(c Client) error {
		if _, err := c.Select(folder, true); err != nil {
			return err
		}

		uids, err := c.UidSearch(imap.NewSearchCriteria())
		if err != nil {
			return err
		}
		sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
		total = len(uids)
		if total == 0 {
			return nil
		}

		if len(uids) > limit {
			uids = uids[len(uids)-limit:]
		}

		seqset := new(imap.SeqSet)
		seqset.AddNum(uids...)

		section := &imap.BodySectionName{Peek: true}
		items := []imap.FetchItem{imap.FetchUid, imap.FetchEnvelope, section.FetchItem()}
		ch := make(chan *imap.Message, len(uids))
		done := make(chan error, 1)
		go func() {
			done <- c.UidFetch(seqset, items, ch)
		}()
		for msg := range ch {
			if msg == nil {
				continue
			}
			parsed, err := parseMessage(msg, section, folder)
			if err != nil {
				// A single unparsable message should not abort the fetch.
				continue
			}
			messages = append(messages, parsed)
		}
		return <-done
	})

	sort.Slice(messages, func(i, j int) bool { return messages[i].UID < messages[j].UID })

	return messages, total, err
}

func parseMessage(msg *imap.Message, section *imap.BodySectionName, folder string) (Message, error) {
	out := Message{UID: msg.Uid, Folder: folder}

	if msg.Envelope != nil {
		out.MessageID = msg.Envelope.MessageId
		out.Subject = msg.Envelope.Subject
		out.From = formatIMAPAddresses(msg.Envelope.From)
		out.To = formatIMAPAddresses(msg.Envelope.To)
		out.Cc = formatIMAPAddresses(msg.Envelope.Cc)
		out.Date = msg.Envelope.Date
	}

	body := msg.GetBody(section)
	if body == nil {
		return out, fmt.Errorf("message %d body not available", msg.Uid)
	}

	reader, err := mail.CreateReader(body)
	if err != nil {
		return out, err
	}

	if out.MessageID == "" {
		if id, err := reader.Header.MessageID(); err == nil {
			out.MessageID = id
		}
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		switch header := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := header.ContentType()
			switch {
			case strings.HasPrefix(contentType, "text/plain") && out.TextBody == "":
				data, err := io.ReadAll(part.Body)
				if err != nil {
					return out, err
				}
				out.TextBody = string(data)
			case strings.HasPrefix(contentType, "text/html") && out.HTMLBody == "":
				data, err := io.ReadAll(part.Body)
				if err != nil {
					return out, err
				}
				out.HTMLBody = string(data)
			}
		case *mail.AttachmentHeader:
			filename, err := header.Filename()
			if err != nil || filename == "" {
				continue
			}
			contentType, _, _ := header.ContentType()
			size, _ := io.Copy(io.Discard, part.Body)
			out.Attachments = append(out.Attachments, Attachment{
				Filename:    filename,
				Size:        size,
				ContentType: contentType,
			})
		}
	}

	return out, nil
}

func (s *Service) ReadMessage(cfg config.Config, folder string, uid uint32) (Message, error) {
	var detail Message
	err := s.withClient(cfg, func(c Client) error {
		if _, err := c.Select(folder, true); err != nil {
			return err
		}

		seqset := new(imap.SeqSet)
		seqset.AddNum(uid)
		section := &imap.BodySectionName{}
		items := []imap.FetchItem{imap.FetchUid, imap.FetchEnvelope, section.FetchItem()}
		ch := make(chan *imap.Message, 1)
		done := make(chan error, 1)
		go func() {
			done <- c.UidFetch(seqset, items, ch)
		}()
		msg := <-ch
		if msg == nil {
			return fmt.Errorf("message %d not found", uid)
		}
		if err := <-done; err != nil {
			return err
		}

		parsed, err := parseMessage(msg, section, folder)
		if err != nil {
			return err
		}
		detail = parsed
		return nil
	})

	return detail, err
}

func (s *Service) FetchRawMessage(cfg config.Config, folder string, uid uint32) ([]byte, error) {
	var raw []byte
	err := s.withClient(cfg, func(c Client) error {
		if _, err := c.Select(folder, true); err != nil {
			return err
		}

		seqset := new(imap.SeqSet)
		seqset.AddNum(uid)
		section := &imap.BodySectionName{}
		items := []imap.FetchItem{section.FetchItem()}
		ch := make(chan *imap.Message, 1)
		done := make(chan error, 1)
		go func() {
			done <- c.UidFetch(seqset, items, ch)
		}()
		msg := <-ch
		if msg == nil {
			return fmt.Errorf("message %d not found", uid)
		}
		if err := <-done; err != nil {
			return err
		}
		body := msg.GetBody(section)
		if body == nil {
			return fmt.Errorf("message body not available")
		}
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		raw = data
		return nil
	})

	return raw, err
}

func (s *Service) DownloadAttachments(cfg config.Config, folder string, uid uint32, dir string) ([]string, error) {
	raw, err := s.FetchRawMessage(cfg, folder, uid)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	reader, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	saved := []string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		header, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, err := header.Filename()
		if err != nil || filename == "" {
			filename = fmt.Sprintf("attachment-%d", len(saved)+1)
		}
		filename = filepath.Base(filename)
		target := filepath.Join(dir, filename)
		target = ensureUniqueFilename(target)
		file, err := os.Create(target)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(file, part.Body); err != nil {
			_ = file.Close()
			return nil, err
		}
		if err := file.Close(); err != nil {
			return nil, err
		}
		saved = append(saved, target)
	}

	return saved, nil
}

func formatIMAPAddresses(addrs []*imap.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr == nil {
			continue
		}
		mailbox := addr.MailboxName
		host := addr.HostName
		full := mailbox
		if host != "" {
			full = mailbox + "@" + host
		}
		if addr.PersonalName != "" {
			parts = append(parts, fmt.Sprintf("%s <%s>", addr.PersonalName, full))
		} else {
			parts = append(parts, full)
		}
	}
	return strings.Join(parts, ", ")
}

func ensureUniqueFilename(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	ext := filepath.Ext(path)
	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return path
}
