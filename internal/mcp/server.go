package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/config"
	"github.com/jcdickinson/doclinks/internal/index"
	"github.com/jcdickinson/doclinks/internal/manifest"
	"github.com/jcdickinson/doclinks/internal/toolchain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

//go:embed instructions.md
var instructions string

const resourceScheme = "doclinks://"

type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	store     index.Store
	// acquirer is shared by overlapping build_manifest calls for the
	// lifetime of the server.
	acquirer *index.Acquirer
	logger   *slog.Logger
}

func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	acquirer, err := manifest.NewAcquirer(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, store: acquirer.Store(), acquirer: acquirer, logger: logger}

	mcpServer := server.NewMCPServer(
		"doclinks",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s, nil
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("component_url",
			mcp.WithDescription("Resolve the javadoc URL of a Maven component using the configured link rules."),
			mcp.WithString("id",
				mcp.Description("Component coordinates as group:name:version"),
				mcp.Required(),
			),
		),
		s.handleComponentURL,
	)

	mcpServer.AddTool(
		mcp.NewTool("stdlib_link",
			mcp.WithDescription("Return the Java standard library javadoc URL for a toolchain version and whether that javadoc needs offline linking."),
			mcp.WithString("version",
				mcp.Description("Java version, e.g. \"1.8\", \"11\" or \"17.0.2\". Defaults to the configured toolchain."),
			),
		),
		s.handleStdlibLink,
	)

	mcpServer.AddTool(
		mcp.NewTool("build_manifest",
			mcp.WithDescription("Build javadoc link options for an exported dependency graph file. Synchronous: downloads or extracts index files when the toolchain needs offline links."),
			mcp.WithString("graph_path",
				mcp.Description("Path to the YAML or JSON graph file"),
				mcp.Required(),
			),
			mcp.WithString("toolchain",
				mcp.Description("Java version overriding the graph file and configuration"),
			),
			mcp.WithBoolean("write",
				mcp.Description("Also write the options file to the configured output path (default false)"),
			),
		),
		s.handleBuildManifest,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourceScheme+"{group}/{name}/{version}",
			"Cached javadoc index",
			mcp.WithTemplateDescription("The element-list cached for a component by build_manifest."),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleComponentURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := req.GetArguments()["id"].(string)
	if raw == "" {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	id, err := component.ParseID(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.cfg.Resolver()(id)), nil
}

type stdlibResult struct {
	Link    string `json:"link"`
	Major   int    `json:"major"`
	Offline bool   `json:"offline"`
}

func (s *Server) handleStdlibLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := req.GetArguments()["version"].(string)
	if raw == "" {
		raw = s.cfg.Toolchain
	}
	policy, err := toolchain.NewPolicy(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resultJSON, _ := json.MarshalIndent(stdlibResult{
		Link:    policy.StdlibLink(),
		Major:   policy.Major,
		Offline: policy.UsesOfflineLinking(),
	}, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

type buildResult struct {
	Options  []string `json:"options"`
	Warnings []string `json:"warnings,omitempty"`
	Output   string   `json:"output,omitempty"`
	Summary  string   `json:"summary"`
}

func (s *Server) handleBuildManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["graph_path"].(string)
	if path == "" {
		return mcp.NewToolResultError("missing required parameter: graph_path"), nil
	}
	override, _ := args["toolchain"].(string)
	write, _ := args["write"].(bool)

	m, err := manifest.BuildFile(ctx, s.cfg, s.acquirer, path, override, s.logger)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build failed: %v", err)), nil
	}

	res := buildResult{Options: m.Lines(), Summary: m.Summary()}
	for _, w := range m.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	if write {
		if err := m.WriteFile(s.cfg.Output); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("writing options file: %v", err)), nil
		}
		res.Output = s.cfg.Output
	}

	resultJSON, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	if !strings.HasPrefix(uri, resourceScheme) || len(parts) != 3 {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}

	data, err := s.store.Read(component.ID{Group: parts[0], Name: parts[1], Version: parts[2]})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
