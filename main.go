package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	orchestratorx "github.com/solution-hr/solution-chat/agent/agents/orchestrator"
	routerx "github.com/solution-hr/solution-chat/agent/agents/router"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
	inquiryx "github.com/solution-hr/solution-chat/agent/inquiry"
	llmx "github.com/solution-hr/solution-chat/agent/llm"
	promptx "github.com/solution-hr/solution-chat/agent/prompt"
	configx "github.com/solution-hr/solution-chat/pkg/config"
	_ "github.com/solution-hr/solution-chat/pkg/logger/autoload"
	openaix "github.com/solution-hr/solution-chat/pkg/openai"
	serverx "github.com/solution-hr/solution-chat/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("solution-chat stopped")
	}
}

func run(ctx context.Context) error {
	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	llmCfg := configx.MustNew[llmx.Config]("OPENAI")
	chatCfg := configx.MustNew[orchestratorx.Config]("CHAT")
	personaCfg := configx.MustNew[promptx.Config]("PERSONA")
	inquiryCfg := configx.MustNew[inquiryx.Config]("INQUIRY")

	registry, err := personaCfg.Load()
	if err != nil {
		return err
	}

	replyModelCfg := llmCfg.For(contractx.AgentTypeReply)
	chatModel, err := replyModelCfg.New(ctx)
	if err != nil {
		return err
	}

	var router contractx.ModeRouter
	if chatCfg.UseExplicitRouting {
		completer, err := openaix.NewJSONCompleter(llmCfg.For(contractx.AgentTypeRouter))
		if err != nil {
			return err
		}
		r, err := routerx.New(completer, registry)
		if err != nil {
			return err
		}
		router = r
	}

	recorder, err := inquiryx.Open(ctx, *inquiryCfg)
	if err != nil {
		return err
	}
	defer recorder.Close()

	orchestrator, err := orchestratorx.New(chatModel, registry, router, recorder, *chatCfg)
	if err != nil {
		return err
	}

	srv := serverx.New(*serverCfg, orchestrator)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", serverCfg.Addr).
			Bool("explicit_routing", chatCfg.UseExplicitRouting).
			Msg("solution-chat listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
