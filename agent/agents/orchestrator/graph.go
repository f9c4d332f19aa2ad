package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/solution-hr/solution-chat/agent/contract"
	nodex "github.com/solution-hr/solution-chat/agent/nodes/orchestrator"
)

const (
	nodeExtractUtterance = "extract_utterance"
	nodeRouteMode        = "route_mode"
	nodeHintAllModes     = "hint_all_modes"
	nodeAssemblePersona  = "assemble_persona"
	nodeCompleteReply    = "complete_reply"
	nodeReshapeReply     = "reshape_reply"
	nodeDetectCTA        = "detect_cta"
	nodeRecordInquiry    = "record_inquiry"
	nodeFinalizeReply    = "finalize_reply"
)

func (o *Orchestrator) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodeExtractUtterance,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ExtractUtterance(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeExtractUtterance, err)
	}

	if err := graph.AddLambdaNode(nodeRouteMode,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RouteMode(ctx, in, o.router, o.minRouteConfidence, o.routeTimeout)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeRouteMode, err)
	}

	if err := graph.AddLambdaNode(nodeHintAllModes,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.HintAllModes(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeHintAllModes, err)
	}

	if err := graph.AddLambdaNode(nodeAssemblePersona,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AssemblePersona(in, o.persona)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeAssemblePersona, err)
	}

	if err := graph.AddLambdaNode(nodeCompleteReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CompleteReply(ctx, in, o.chatModel, o.completionTimeout)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeCompleteReply, err)
	}

	if err := graph.AddLambdaNode(nodeReshapeReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ReshapeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeReshapeReply, err)
	}

	if err := graph.AddLambdaNode(nodeDetectCTA,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.DetectCTA(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeDetectCTA, err)
	}

	if err := graph.AddLambdaNode(nodeRecordInquiry,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RecordInquiry(ctx, in, o.inquiries)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeRecordInquiry, err)
	}

	if err := graph.AddLambdaNode(nodeFinalizeReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeFinalizeReply, err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			if o.useExplicitRouting {
				return nodeRouteMode, nil
			}
			return nodeHintAllModes, nil
		},
		map[string]bool{
			nodeRouteMode:    true,
			nodeHintAllModes: true,
		},
	)
	if err := graph.AddBranch(nodeExtractUtterance, branch); err != nil {
		return nil, fmt.Errorf("add routing branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodeExtractUtterance},
		{nodeRouteMode, nodeAssemblePersona},
		{nodeHintAllModes, nodeAssemblePersona},
		{nodeAssemblePersona, nodeCompleteReply},
		{nodeCompleteReply, nodeReshapeReply},
		{nodeReshapeReply, nodeDetectCTA},
		{nodeDetectCTA, nodeRecordInquiry},
		{nodeRecordInquiry, nodeFinalizeReply},
		{nodeFinalizeReply, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
