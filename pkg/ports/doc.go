/*
Package ports defines the driven ports (interfaces) of the generator.

These interfaces decouple the generation pass from the host: where the expression
configuration comes from, where generated artifacts are written, which controller
templates and animations exist, and how progress is shown.

# Key Interfaces

  - MenuSource: loads the expression configuration (files, Loam, memory).
  - TemplateSource / ControllerSink: the controller template copied for each pass.
  - MenuSink: the selector menu tree under construction.
  - AnimationCatalog / ThumbnailProvider: host animations and their icons.
  - OutputStore / Installation: generated namespaces and which of them are in use.
  - ProgressReporter: user-visible progress during a pass.
  - DistributedLocker: serializes passes for the same menu across processes.
*/
package ports
