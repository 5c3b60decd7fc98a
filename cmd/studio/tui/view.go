package tui

import (
	"fmt"
	"strings"
)

// View renders the studio dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(titleText))
	b.WriteString("\n\n")
	b.WriteString(m.serverLine())
	b.WriteString("\n")
	if m.Caps != nil {
		b.WriteString(m.capabilityLine())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.stateLine())
	b.WriteString("\n")

	if box := m.resultBox(); box != "" {
		b.WriteString("\n")
		b.WriteString(box)
		b.WriteString("\n")
	}

	if len(m.Lessons) > 0 {
		b.WriteString("\n")
		b.WriteString(HighlightStyle.Render(historyHeading))
		b.WriteString("\n")
		for _, lesson := range m.Lessons {
			b.WriteString(m.lessonLine(lesson))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(helpText))
	b.WriteString("\n")
	return b.String()
}

func (m Model) serverLine() string {
	if m.Connected {
		return StatusStyle.Render("● " + m.Client.baseURL)
	}
	return ErrorStyle.Render("○ " + m.Client.baseURL + " (unreachable)")
}

func (m Model) capabilityLine() string {
	parts := []string{
		capability("audio", m.Caps.AudioEnabled),
		capability("speech", m.Caps.SpeechAvailable),
		capability("merge", m.Caps.MergeAvailable),
		capability("youtube", m.Caps.Authenticated),
	}
	mode := "upload: auto"
	if !m.Upload {
		mode = "upload: off"
	}
	return InfoStyle.Render(strings.Join(parts, "  ") + "  " + mode)
}

func capability(name string, on bool) string {
	if on {
		return name + " ✓"
	}
	return name + " ✗"
}

func (m Model) stateLine() string {
	switch m.State {
	case StateGenerating:
		return StatusStyle.Render(generatingText)
	case StateDone:
		return StatusStyle.Render(doneText)
	case StateFailed:
		err := "unknown error"
		if m.Err != nil {
			err = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf(failedText, err))
	default:
		return readyText
	}
}

func (m Model) resultBox() string {
	if m.Result == nil || !m.Result.Success {
		return ""
	}
	var b strings.Builder
	if m.Result.Content != nil {
		b.WriteString(fmt.Sprintf("Topic: %s\n", m.Result.Content.Topic))
		b.WriteString(fmt.Sprintf("Title: %s\n", m.Result.Content.Title))
	}
	b.WriteString(fmt.Sprintf("Video: %s", m.Result.VideoURL))
	if m.Result.Uploaded {
		b.WriteString(fmt.Sprintf("\nYouTube: https://youtube.com/shorts/%s", m.Result.YouTubeID))
	} else if m.Result.UploadError != "" {
		b.WriteString(fmt.Sprintf("\nUpload failed: %s", m.Result.UploadError))
	}
	return BoxStyle.Render(b.String())
}

func (m Model) lessonLine(lesson Lesson) string {
	marker := "📼"
	if lesson.Uploaded {
		marker = "📺"
	}
	line := fmt.Sprintf("  %s %s · %s", marker, lesson.Topic, lesson.Title)
	if lesson.Uploaded {
		return StatusStyle.Render(line)
	}
	return line
}
