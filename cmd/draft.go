package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/nanoclass/internal/credential"
	"github.com/abhisek/nanoclass/internal/gateway"
	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/store"
)

// imageConcurrency caps parallel illustration requests for --images.
const imageConcurrency = 3

var draftCmd = &cobra.Command{
	Use:   "draft <topic>",
	Short: "Draft a lesson without the TUI",
	Long:  "Draft a five-slide lesson for a topic and print it. Uses the stored API key or the environment.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topic := strings.Join(args, " ")

		profile, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		illustrate, _ := cmd.Flags().GetBool("images")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		events := s.EventRepo()

		cfg := loadLLMConfig()
		key, source, err := credential.New(s.SettingsRepo()).Resolve(ctx, cfg.APIKey())
		if err != nil {
			return err
		}
		if source == credential.SourceNone {
			return fmt.Errorf("no API key: run nanoclass to enter one or set GEMINI_API_KEY")
		}

		client, err := gateway.NewFromConfig(ctx, cfg.WithAPIKey(key), events)
		if err != nil {
			return err
		}

		l, err := client.GenerateDraft(ctx, gateway.DraftRequest{Topic: topic, Profile: profile})
		if err != nil {
			recordLessonEvent(cmd, events, lesson.Lesson{Topic: topic}, store.LessonDraftFailed, err.Error())
			return fmt.Errorf("draft %q: %w", topic, err)
		}
		recordLessonEvent(cmd, events, l, store.LessonDrafted, "cli")

		if illustrate {
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(imageConcurrency)
			for i := range l.Slides {
				g.Go(func() error {
					l.Slides[i].ImageURL = client.GenerateImage(gctx, l.Slides[i].ImagePrompt, profile.Style)
					return nil
				})
			}
			_ = g.Wait() // GenerateImage never fails
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(l)
		}
		printLesson(l, profile)
		return nil
	},
}

func init() {
	draftCmd.Flags().StringSlice("grade", []string{"K2"}, "Grade tags (K1, K2, K3, P1, P2, P3)")
	draftCmd.Flags().String("language", string(lesson.English), "Lesson language (English, Cantonese, Mandarin)")
	draftCmd.Flags().String("style", string(lesson.StyleCartoon), "Visual style (cartoon, realistic, storybook)")
	draftCmd.Flags().Bool("json", false, "Print the lesson as JSON")
	draftCmd.Flags().Bool("images", false, "Also generate an illustration for every slide")
}

func profileFromFlags(cmd *cobra.Command) (lesson.TeacherProfile, error) {
	p := lesson.DefaultProfile()

	grades, _ := cmd.Flags().GetStringSlice("grade")
	p.Grades = p.Grades[:0]
	for _, g := range grades {
		g = strings.ToUpper(strings.TrimSpace(g))
		if !lesson.ValidGrade(g) {
			return p, fmt.Errorf("unknown grade %q", g)
		}
		if !p.HasGrade(g) {
			p.Grades = append(p.Grades, g)
		}
	}

	lang, _ := cmd.Flags().GetString("language")
	l, err := lesson.ParseLanguage(lang)
	if err != nil {
		return p, err
	}
	p.Language = l

	style, _ := cmd.Flags().GetString("style")
	st, err := lesson.ParseStyle(strings.ToLower(style))
	if err != nil {
		return p, err
	}
	p.Style = st
	return p, nil
}

func recordLessonEvent(cmd *cobra.Command, events store.EventRepo, l lesson.Lesson, action, detail string) {
	err := events.AppendLessonEvent(cmd.Context(), store.LessonEventData{
		LessonID:   l.ID,
		Topic:      l.Topic,
		Action:     action,
		SlideCount: len(l.Slides),
		Detail:     detail,
	})
	if err != nil {
		log.Warn().Err(err).Msg("record lesson event")
	}
}

func printLesson(l lesson.Lesson, p lesson.TeacherProfile) {
	fmt.Printf("%s\n", l.Topic)
	fmt.Printf("%s • %s • %s\n", strings.Join(p.Grades, ", "), p.Language, p.Style)
	fmt.Println(strings.Repeat("─", 60))

	for i, s := range l.Slides {
		fmt.Printf("%d. [%s] %s\n", i+1, s.Type, s.Title)
		if s.Content != "" {
			fmt.Printf("   %s\n", s.Content)
		}
		if s.SpeakerNotes != "" {
			fmt.Printf("   Notes: %s\n", s.SpeakerNotes)
		}
		fmt.Printf("   Image: %s\n", s.ImagePrompt)
		if s.ImageURL != "" {
			fmt.Printf("   -> %s\n", describeRef(s.ImageURL))
		}
		if q := s.Quiz; q != nil {
			fmt.Printf("   Q: %s\n", q.Question)
			for j, o := range q.Options {
				mark := " "
				if j == q.CorrectIndex {
					mark = "*"
				}
				fmt.Printf("     %s %d) %s\n", mark, j+1, o)
			}
			if q.RewardMessage != "" {
				fmt.Printf("   Reward: %s\n", q.RewardMessage)
			}
		}
	}
}

// describeRef keeps inline images from flooding the terminal.
func describeRef(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		return fmt.Sprintf("inline image (%d bytes encoded)", len(ref))
	}
	return ref
}
